// Package artifacts names the per-chapter files studyflow produces and
// consumes. Every chapter owns chapters/chNN/ holding the extracted text
// (chapter.txt), the raw transcript (session.log), the sanitized transcript
// (output.txt), and an src/ directory for exercise files.
package artifacts
