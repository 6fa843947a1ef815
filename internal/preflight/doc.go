// Package preflight provides readiness checks for the study repository and
// the external tools studyflow depends on.
//
// These checks run in two contexts:
//   - start and done call Require before touching any state. A missing .git
//     directory or reference document aborts the command.
//   - The CLI "studyflow doctor" command runs RunAll and CheckSystemDeps to
//     display a full report.
package preflight
