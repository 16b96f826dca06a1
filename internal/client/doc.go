// Package client is an HTTP client for a remote svxdash API.
//
// It lets the CLI read the talker log and send control commands to a
// reflector host running "svxdash serve" without access to its files:
//
//	c, err := client.NewClient("radio.local:8080")
//	if err != nil {
//		return err
//	}
//	entries, err := c.FetchLog(ctx, client.LogQuery{Lines: 50, Order: talker.Descending})
//
// Error responses carry the server's message, for example
// `api /api/log returned status 500: Error reading log file`.
package client
