// Package chapters maintains the chapter registry: which pages of the
// reference document belong to each chapter, and the chapter's title.
//
// Entries are created lazily. The first time a chapter is needed the user is
// asked for its page range once; the answer is persisted to a JSON record
// committed with the study repository and reused from then on.
package chapters
