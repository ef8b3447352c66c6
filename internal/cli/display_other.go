//go:build !linux

package cli

import (
	"context"

	"github.com/matzehuels/slicereveal/pkg/errors"
	"github.com/matzehuels/slicereveal/pkg/pipeline"
)

func (c *CLI) runDisplay(ctx context.Context, input string, card, fps int, opts pipeline.Options) error {
	return errors.New(errors.ErrCodeUnsupported, "display needs a Linux DRM device")
}
