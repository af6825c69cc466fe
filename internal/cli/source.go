package cli

import (
	"context"

	"github.com/piwi3910/collagepack/internal/errors"
	"github.com/piwi3910/collagepack/internal/importer"
	"github.com/piwi3910/collagepack/internal/model"
	"github.com/piwi3910/collagepack/internal/project"
)

// loadPool reads the image pool named by o. Import warnings are logged;
// row-level errors are logged and the rows skipped. An empty pool is an error.
func loadPool(ctx context.Context, o *sourceOpts) ([]model.PoolImage, string, error) {
	logger := loggerFromContext(ctx)
	st := startStage(logger, "pool")

	var (
		res    importer.ImportResult
		source string
	)
	switch {
	case o.dir != "":
		source = o.dir
		var err error
		if res, err = importer.ScanDirectory(o.dir); err != nil {
			return nil, source, err
		}
	case o.manifest == "-":
		source = "stdin"
		if o.stdin == nil {
			return nil, source, errors.New(errors.ErrCodeInvalidInput, "no stdin to read the manifest from")
		}
		res = importer.ImportCSVFromReader(o.stdin)
	case o.manifest != "":
		source = o.manifest
		var err error
		if res, err = importer.ImportManifest(o.manifest); err != nil {
			return nil, source, err
		}
	default:
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "one of --dir or --manifest is required")
	}

	for _, w := range res.Warnings {
		logger.Warn(w, "source", source)
	}
	for _, e := range res.Errors {
		logger.Error(e, "source", source)
	}
	if len(res.Images) == 0 {
		return nil, source, errors.New(errors.ErrCodeInvalidInput, "no images loaded from %s", source)
	}

	st.done("source", source, "images", len(res.Images), "skipped", len(res.Errors))
	if o.manifest != "-" {
		rememberSource(ctx, source)
	}
	return res.Images, source, nil
}

// rememberSource records source in the app config's recent list. Failures
// are logged, not returned.
func rememberSource(ctx context.Context, source string) {
	logger := loggerFromContext(ctx)
	path := project.DefaultConfigPath()

	cfg, err := project.LoadAppConfig(path)
	if err != nil {
		logger.Debug("skipping recent sources", "err", err)
		return
	}
	cfg.AddRecentSource(source)
	if err := project.SaveAppConfig(path, cfg); err != nil {
		logger.Debug("cannot save app config", "path", path, "err", err)
	}
}
