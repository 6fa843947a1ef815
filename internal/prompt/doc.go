// Package prompt provides the console interaction studyflow needs: asking for
// a chapter's page range and resolving session name conflicts. Callers depend
// on the Prompter interface so tests can script answers.
package prompt
