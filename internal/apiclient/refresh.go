package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/yigit/researchconnect/internal/app/models/dto"
	"github.com/yigit/researchconnect/internal/pkg/apperrors"
	"github.com/yigit/researchconnect/internal/pkg/metrics"
)

const refreshPath = "/auth/refresh"

type refreshResult struct {
	token string
	err   error
}

// renew returns a credential to use in place of stale.
//
// At most one refresh runs at a time. The first caller to find no refresh in
// flight performs it; everyone arriving while it runs is queued and receives the
// same outcome, in arrival order. When the stored token already differs from
// stale, another caller has refreshed since stale was read and the stored token
// is returned without a network call.
//
// The refresh runs detached from ctx so one caller giving up cannot fail the
// others. A queued caller whose ctx ends returns ctx.Err() and leaves the queue
// to be drained by the refresher.
func (c *Client) renew(ctx context.Context, stale string) (string, error) {
	c.mu.Lock()

	current, ok := c.store.Token()
	if !ok {
		c.mu.Unlock()
		return "", fmt.Errorf("%w: %w", apperrors.ErrSessionExpired, apperrors.ErrNoCredential)
	}
	if current != stale {
		c.mu.Unlock()
		return current, nil
	}

	if c.refreshing {
		wait := make(chan refreshResult, 1)
		c.waiters = append(c.waiters, wait)
		c.metrics.RefreshWaiters.Inc()
		c.mu.Unlock()

		select {
		case res := <-wait:
			return res.token, res.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	c.refreshing = true
	c.mu.Unlock()

	token, err := c.refresh(context.WithoutCancel(ctx), stale)
	if err != nil {
		err = fmt.Errorf("%w: %w", apperrors.ErrSessionExpired, err)
		if clearErr := c.store.Clear(); clearErr != nil {
			c.log.Error().Err(clearErr).Msg("Failed to clear stored credential")
		}
	}

	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.refreshing = false
	for _, w := range waiters {
		w <- refreshResult{token: token, err: err}
	}
	c.metrics.RefreshWaiters.Sub(float64(len(waiters)))
	c.mu.Unlock()

	if err != nil {
		c.metrics.Refreshes.WithLabelValues(metrics.RefreshFailure).Inc()
		c.log.Warn().Err(err).Int("waiters", len(waiters)).Msg("Token refresh failed, session cleared")
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		return "", err
	}

	c.metrics.Refreshes.WithLabelValues(metrics.RefreshSuccess).Inc()
	c.log.Info().Int("waiters", len(waiters)).Msg("Token refreshed")
	return token, nil
}

// refresh exchanges current for a new token and persists it. It goes straight to
// send so a 401 from the refresh endpoint can never start another refresh.
func (c *Client) refresh(ctx context.Context, current string) (string, error) {
	req, err := newRequest(http.MethodPost, refreshPath, dto.TokenRequest{Token: current})
	if err != nil {
		return "", err
	}

	resp, err := c.send(ctx, req, current)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrRefreshFailed, err)
	}
	if resp.status != http.StatusOK {
		return "", fmt.Errorf("%w: %w", apperrors.ErrRefreshFailed, newAPIError(req, resp))
	}

	var out dto.TokenResponse
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", apperrors.ErrRefreshFailed, err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("%w: %w", apperrors.ErrRefreshFailed, errors.New("response carried no token"))
	}

	if err := c.store.SetToken(out.Token); err != nil {
		// the new token still serves this process
		c.log.Error().Err(err).Msg("Failed to persist refreshed token")
	}
	return out.Token, nil
}
