package zoom

import "context"

// DownloadTranscript fetches a raw transcript payload by its download
// reference and returns the body verbatim. It authenticates with the current
// token and delegates retry to the Executor; interpreting the payload is the
// document writer's concern.
func (c *Client) DownloadTranscript(ctx context.Context, ref string) (string, error) {
	var body []byte
	err := c.exec.Do(ctx, "transcript.download", func(ctx context.Context) error {
		b, err := c.get(ctx, "transcript.download", ref)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return "", err
	}
	return string(body), nil
}
