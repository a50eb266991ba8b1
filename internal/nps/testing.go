package nps

// SetTestURL points an API client at a test server and disables the pause
// between batches. This should only be used in tests.
func SetTestURL(c *Client, apiURL string) {
	if apiURL != "" {
		c.apiURL = apiURL
	}
	c.pause = 0
}

// SetBoundaryTestURL points a boundary client at a test server.
// This should only be used in tests.
func SetBoundaryTestURL(b *BoundaryClient, queryURL string) {
	if queryURL != "" {
		b.queryURL = queryURL
	}
}
