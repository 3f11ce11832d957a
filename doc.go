// Package markerboard is a shared map-marker editor built on [Ebitengine].
//
// Users drop small iconographic markers onto a background image and move,
// turn, resize, recolor, reshape, relabel, clone or delete them. Every
// change is pushed to a document server and every client converges on the
// server's copy through long-polling.
//
// # Quick start
//
//	controls := &markerboard.FormControls{}
//	client := markerboard.NewClient("http://localhost:4567", "dungeon1", nil)
//	session := markerboard.NewSession(markerboard.SessionOptions{
//		Controls: controls,
//		Pusher:   &markerboard.AsyncPusher{Client: client, Timeout: 10 * time.Second},
//		Loader:   &markerboard.HTTPImageLoader{},
//	})
//	syncer := markerboard.NewSyncer(client, session, 0, nil)
//	go syncer.Serve(ctx)
//
//	editor := markerboard.NewEditor(session, controls, markerboard.EditorConfig{
//		Width: 800, Height: 600, Title: "markers",
//	})
//	err := editor.Run()
//
// # Snapshots
//
// A [Session] holds three copies of the [ViewState]: old (the previous
// server snapshot), next (the latest server snapshot plus local edits) and
// current (what is drawn). When a snapshot arrives, next becomes old and the
// new one becomes next; for the following 500ms every marker present in both
// is blended linearly from its old to its new position, rotation and size.
// The marker under the pointer is never blended and never overwritten by
// the server while it is held.
//
// # Gestures
//
// The [Mode] chosen in the control panel decides what a press does to the
// marker under it. Pressing empty canvas always creates a marker. Releasing
// pushes the held marker to the server; deletes are pushed on press and
// take effect when the server's next snapshot omits the marker.
//
// # Sync
//
// [Syncer] keeps exactly one listen request in flight. Failures are logged
// and retried after a fixed delay with no limit. Pushes are fire-and-forget
// through [AsyncPusher].
//
// # Scripts
//
// [LoadScript] reads a JSON list of steps (click, drag, wait, mode, label,
// background, screenshot) that [Editor] replays frame by frame through the
// same path as real input, for demos and visual checks.
//
// [Ebitengine]: https://ebitengine.org
package markerboard
