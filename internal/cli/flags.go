package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/collagepack/internal/errors"
	"github.com/piwi3910/collagepack/internal/model"
	"github.com/piwi3910/collagepack/internal/project"
)

// settingsOpts holds the flags shared by commands that lay out a pool.
type settingsOpts struct {
	config     string // settings file (.toml or .json)
	preset     string // named preset from the presets file
	algorithm  string
	paper      string
	landscape  bool
	gap        float64
	downscale  float64
	minSize    float64
	normalize  bool
	seed       uint32
	allowCrop  bool
	maxCrop    float64
	cropAnchor string
	dpi        int
}

// sourceOpts selects where the image pool comes from.
type sourceOpts struct {
	dir      string
	manifest string    // "-" reads a CSV manifest from stdin
	stdin    io.Reader // set from cmd.InOrStdin when the command runs
}

func addSettingsFlags(cmd *cobra.Command, o *settingsOpts) {
	d := model.DefaultSettings()
	f := cmd.Flags()
	f.StringVar(&o.config, "config", "", "settings file (.toml or .json)")
	f.StringVar(&o.preset, "preset", "", "named settings preset")
	f.StringVarP(&o.algorithm, "algorithm", "a", string(d.Algorithm), "layout algorithm: "+algorithmNames())
	f.StringVarP(&o.paper, "paper", "p", d.PaperSize, "paper size (see 'collagepack papers')")
	f.BoolVar(&o.landscape, "landscape", d.Landscape, "use landscape orientation")
	f.Float64Var(&o.gap, "gap", d.Gap, "gap between images in inches")
	f.Float64Var(&o.downscale, "max-downscale", d.MaxDownscalePercent, "maximum downscale percent (0-90)")
	f.Float64Var(&o.minSize, "min-size", d.MinImageSize, "minimum image side in inches")
	f.BoolVar(&o.normalize, "normalize", d.NormalizeSizes, "normalize image sizes before layout")
	f.Uint32Var(&o.seed, "seed", 0, "random seed (default: random)")
	f.BoolVar(&o.allowCrop, "allow-crop", d.AllowCropping, "allow the renderer to crop images")
	f.Float64Var(&o.maxCrop, "max-crop", d.MaxCropPercent, "maximum crop percent")
	f.StringVar(&o.cropAnchor, "crop-anchor", string(d.CropAnchor), "crop anchor: center, top, bottom, left, right")
	f.IntVar(&o.dpi, "dpi", d.OutputDPI, "output resolution")
}

func addSourceFlags(cmd *cobra.Command, o *sourceOpts) {
	cmd.Flags().StringVar(&o.dir, "dir", "", "directory of images")
	cmd.Flags().StringVar(&o.manifest, "manifest", "", "CSV or Excel manifest of images (- reads CSV from stdin)")
	cmd.MarkFlagsMutuallyExclusive("dir", "manifest")
	cmd.MarkFlagsOneRequired("dir", "manifest")
}

func algorithmNames() string {
	names := make([]string, len(model.Algorithms))
	for i, a := range model.Algorithms {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

// resolveSettings layers settings: defaults, app config, preset, settings
// file, then explicitly set flags.
func resolveSettings(cmd *cobra.Command, o *settingsOpts) (model.CollageSettings, error) {
	s := model.DefaultSettings()

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return s, fmt.Errorf("load app config: %w", err)
	}
	cfg.ApplyToSettings(&s)

	if o.preset != "" {
		presets, err := project.LoadPresets(project.DefaultPresetsPath())
		if err != nil {
			return s, fmt.Errorf("load presets: %w", err)
		}
		p, ok := project.FindPreset(presets, o.preset)
		if !ok {
			return s, errors.New(errors.ErrCodeInvalidInput, "unknown preset %q", o.preset)
		}
		s = p.Settings
	}

	if o.config != "" {
		if err := project.LoadSettingsInto(o.config, &s); err != nil {
			return s, err
		}
	}

	applyFlags(cmd, o, &s)

	if _, ok := model.ParseAlgorithm(string(s.Algorithm)); !ok {
		return s, errors.New(errors.ErrCodeInvalidAlgorithm, "invalid algorithm: %s (must be one of %s)", s.Algorithm, algorithmNames())
	}
	if _, ok := model.LookupPaperSize(s.PaperSize, s.Landscape); !ok {
		return s, errors.New(errors.ErrCodeInvalidPaperSize, "invalid paper size: %s", s.PaperSize)
	}
	return s, nil
}

// applyFlags copies flags the user set onto s.
func applyFlags(cmd *cobra.Command, o *settingsOpts, s *model.CollageSettings) {
	changed := cmd.Flags().Changed
	if changed("algorithm") {
		if a, ok := model.ParseAlgorithm(o.algorithm); ok {
			s.Algorithm = a
		} else {
			s.Algorithm = model.Algorithm(o.algorithm)
		}
	}
	if changed("paper") {
		s.PaperSize = o.paper
	}
	if changed("landscape") {
		s.Landscape = o.landscape
	}
	if changed("gap") {
		s.Gap = o.gap
	}
	if changed("max-downscale") {
		s.MaxDownscalePercent = o.downscale
	}
	if changed("min-size") {
		s.MinImageSize = o.minSize
	}
	if changed("normalize") {
		s.NormalizeSizes = o.normalize
	}
	if changed("seed") {
		seed := o.seed
		s.Seed = &seed
	}
	if changed("allow-crop") {
		s.AllowCropping = o.allowCrop
	}
	if changed("max-crop") {
		s.MaxCropPercent = o.maxCrop
	}
	if changed("crop-anchor") {
		s.CropAnchor = model.CropAnchor(o.cropAnchor)
	}
	if changed("dpi") {
		s.OutputDPI = o.dpi
	}
}
