package vektopay

import "go.uber.org/zap"

// Surface is the presentation capability OpenChallenge renders into.
// It is injected at client construction instead of assumed ambient, so
// the lifecycle client stays testable in contexts with no UI at all.
//
// Navigate sends the current execution context to url; from the
// client's perspective navigation is irreversible. OpenFrame embeds the
// challenge in a modal frame and returns the function that tears the
// frame down again.
type Surface interface {
	Navigate(url string) error
	OpenFrame(url string) (close func(), err error)
}

// ChallengeHandle refers to one presented challenge.
//
// Close tears down whatever the presentation created. Handles are
// single-use: the first Close takes effect, later calls are no-ops.
// For redirect challenges Close never had anything to undo.
type ChallengeHandle struct {
	close func()
}

// Close removes the challenge presentation, if there is anything to
// remove.
func (h *ChallengeHandle) Close() {
	if h.close == nil {
		return
	}
	h.close()
	h.close = nil
}

// OpenChallenge presents a step-up authentication challenge on the
// configured Surface. Iframe challenges open a modal frame whose handle
// closes it; every other method is presented as a redirect with a no-op
// handle. Each call is independent — the presenter holds no state
// across challenges.
//
// Without a configured Surface the call fails with
// ErrChallengeNotSupported.
func (c *Client) OpenChallenge(challenge Challenge) (*ChallengeHandle, error) {
	if c.surface == nil {
		return nil, ErrChallengeNotSupported
	}

	c.logger.Info("presenting challenge",
		zap.String("method", string(challenge.Method)),
	)

	if challenge.Method == ChallengeIframe {
		closeFrame, err := c.surface.OpenFrame(challenge.URL)
		if err != nil {
			return nil, err
		}
		return &ChallengeHandle{close: closeFrame}, nil
	}

	if err := c.surface.Navigate(challenge.URL); err != nil {
		return nil, err
	}
	return &ChallengeHandle{}, nil
}
