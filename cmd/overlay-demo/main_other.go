//go:build !windows

package main

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/kirides/d3doverlay/internal/config"
)

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	return errors.New("overlay-demo needs Direct3D 11 and only runs on windows, try overlay-preview")
}
