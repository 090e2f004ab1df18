// Package cli is the interactive gophdrive terminal client.
//
// On start it restores a persisted session if one is still valid, then runs
// a REPL. While a user is signed in a background watcher keeps the file
// inventory fresh after uploads and deletes.
//
// Commands:
//   - login / logout
//   - (l)ist                 list files with size and date
//   - upload <path>...       upload up to five files, one after another
//   - delete <n>             delete file n (asks for confirmation)
//   - open <n>               print file n's one-hour download URL
//   - share <n>              create a three-day share link for file n
//   - copy                   copy the last share link to the clipboard
//   - email <address>        email the last share link
//
// The REPL is started with App.Run, which blocks until the user exits.
package cli
