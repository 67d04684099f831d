//go:generate mockgen -source=deps.go -destination=deps_mock_test.go -package=feed

package feed

import (
	"context"

	"github.com/mxpv/mygpo/pkg/model"
)

type subscriptionProvider interface {
	WalkSubscriptions(ctx context.Context, deviceID string, cb func(podcast *model.Podcast) error) error
}
