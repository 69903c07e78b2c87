// Package sequence generates bounded Fibonacci-like sequences seeded with
// (1, 1).
//
// The seed terms are always part of a rendered sequence. Generation then
// runs steps 2 through count-2 inclusive, each producing prev+curr, so
// Seeded(10, Width64) yields 1 1 2 3 5 8 13 21 34.
//
// Fixed widths (u8, u16, u32, u64) check every addition and fail with an
// apperrors.OverflowError as soon as a term does not fit. The big width uses
// math/big and never overflows. All state lives in a local State value, so
// repeated calls with the same arguments produce identical results.
package sequence
