// Package orchestration runs one or more sequence generators concurrently
// and compares their results. Presentation is kept behind the
// ProgressReporter and ResultPresenter interfaces.
package orchestration
