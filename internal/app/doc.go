// Package app is the composition root for svxdash.
//
// It loads the config, builds a talker engine over the reflector log and
// keeps a state.Store fresh with a Poller. The poller re-reads the log on a
// fixed cadence, and early when fsnotify reports a write. Consecutive read
// failures back off exponentially up to 30 seconds.
//
// Three entry points share that wiring:
//
//   - Run starts the terminal dashboard. Logs go to the app_log file.
//   - Serve starts the HTTP API. Each refresh is pushed to websocket clients.
//     Logs are JSON on stdout.
//   - Entries reads one window for the tail command.
//
// When nats_url is set, Run and Serve also attach an announce.Announcer so
// talker starts and stops are published as they are seen.
//
//	┌────────────┐   Window()   ┌──────────┐  Update()  ┌─────────────┐
//	│ talker.    │ <─────────── │  Poller  │ ─────────> │ state.Store │ <── ui
//	│ Engine     │              └────┬─────┘            └─────────────┘
//	└────────────┘                   │ OnRefresh
//	                                 ├──> api.Hub.Broadcast
//	                                 └──> announce.Announcer.Handle
package app
