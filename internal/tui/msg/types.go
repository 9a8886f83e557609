// Package msg defines the typed bubbletea messages flowing through the
// arffview TUI, and the commands that produce them.
package msg

import (
	"arffview/internal/service"
)

// FileOfferedMsg carries a candidate file path from the drop directory.
type FileOfferedMsg struct {
	Path string
}

// DropRejectedMsg reports a dropped file that does not carry the
// required extension.
type DropRejectedMsg struct {
	Path string
}

// WatchErrMsg wraps a drop-directory watcher failure.
type WatchErrMsg struct {
	Err error
}

// UploadProgressMsg reports bytes sent during an upload.
type UploadProgressMsg struct {
	Sent  int64
	Total int64
}

// UploadFinishedMsg carries the outcome of a submission: exactly one of
// Result and Err is meaningful.
type UploadFinishedMsg struct {
	Result *service.Result
	Err    error
}
