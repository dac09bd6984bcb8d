package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrymomot/deeplink"
	"github.com/dmitrymomot/deeplink/core/config"
	"github.com/dmitrymomot/deeplink/core/matcher"
	"github.com/dmitrymomot/deeplink/integration/routesource/s3"
	"github.com/dmitrymomot/deeplink/pkg/routefile"
)

var errNoRoutes = errors.New("no route table given: use --routes or DEEPLINK_ROUTES_FILE")

// s3Settings holds the S3 settings that do not come from the location itself.
type s3Settings struct {
	Region         string `env:"DEEPLINK_S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"DEEPLINK_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"DEEPLINK_S3_SECRET_KEY"`
	Endpoint       string `env:"DEEPLINK_S3_ENDPOINT"`
	ForcePathStyle bool   `env:"DEEPLINK_S3_FORCE_PATH_STYLE"`
}

// source picks a route table source for location.
func source(ctx context.Context, location string) (routefile.Source, error) {
	if location == "" {
		return nil, errNoRoutes
	}

	rest, ok := strings.CutPrefix(location, "s3://")
	if !ok {
		return routefile.File(location), nil
	}

	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: %q", s3.ErrInvalidConfig, location)
	}

	var settings s3Settings
	if err := config.Load(&settings); err != nil {
		return nil, err
	}

	return s3.New(ctx, s3.Config{
		Bucket:         bucket,
		Key:            key,
		Region:         settings.Region,
		AccessKeyID:    settings.AccessKeyID,
		SecretKey:      settings.SecretKey,
		Endpoint:       settings.Endpoint,
		ForcePathStyle: settings.ForcePathStyle,
	})
}

func (a *app) loadTable(ctx context.Context) (*routefile.Table, error) {
	src, err := source(ctx, a.routes)
	if err != nil {
		return nil, err
	}
	return routefile.Load(ctx, src)
}

// buildRouter compiles t with the configured global params added to the
// table's own, so every command sees the same set of global names.
func buildRouter(t *routefile.Table, globals []string, opts ...deeplink.Option[routefile.Named, matcher.Params]) (*tableRouter, error) {
	base := deeplink.WithGlobalParams[routefile.Named, matcher.Params](extraNames(t.GlobalParams, globals)...)
	return t.Router(append([]deeplink.Option[routefile.Named, matcher.Params]{base}, opts...)...)
}

// extraNames returns the names in more that are not already in base.
func extraNames(base, more []string) []string {
	var out []string
	for _, name := range more {
		if !slices.Contains(base, name) && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}
