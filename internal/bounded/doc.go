// Package bounded provides checked access to fixed-size collections.
//
// An index arrives as text, is parsed as an unsigned integer, validated
// against the collection length and only then used. Every failure is
// returned as a typed error from the apperrors package; nothing here
// indexes a slice without checking first.
package bounded
