package msg

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"arffview/internal/dataset"
	"arffview/internal/service"
	"arffview/internal/watch"
)

// WaitForDrop blocks on the drop-directory watcher and converts its
// next event into a message. The model re-arms this command after
// consuming each message.
func WaitForDrop(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case path, ok := <-w.Files():
			if !ok {
				return nil
			}
			return FileOfferedMsg{Path: path}
		case path, ok := <-w.Rejected():
			if !ok {
				return nil
			}
			return DropRejectedMsg{Path: path}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return WatchErrMsg{Err: err}
		}
	}
}

// Submit uploads the selected file as a single asynchronous task. The
// resulting message carries the parsed result or the error; there is no
// other way out, which is what guarantees the loading state always
// clears.
func Submit(client service.Client, sel dataset.Selected) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Process(context.Background(), sel)
		return UploadFinishedMsg{Result: result, Err: err}
	}
}

// ListenProgress relays the next progress update from an upload. The
// model re-arms it after each message.
func ListenProgress(ch <-chan UploadProgressMsg) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return nil
		}
		return update
	}
}
