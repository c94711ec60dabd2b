package add

import (
	"github.com/MrSnakeDoc/altcat/internal/config"
	"github.com/MrSnakeDoc/altcat/internal/errs"
	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/middleware"
	"github.com/MrSnakeDoc/altcat/internal/utils"
)

type Adder struct {
	Config *config.Config
}

func New(cfg *config.Config) *Adder {
	return &Adder{Config: cfg}
}

// Execute appends every uri to the configured sources, duplicates included.
// URIs that do not look fetchable are still added, with a warning: they will
// surface as a fetch error on their slot.
func (a *Adder) Execute(uris []string) error {
	if len(uris) == 0 {
		return middleware.FlagComboError(errs.MissingSourceURI)
	}

	for _, uri := range uris {
		if _, err := utils.ParseRemoteURL(uri); err != nil {
			logger.Warn("%s: %v", uri, err)
		}
		for _, existing := range a.Config.File.Sources {
			if existing == uri {
				logger.Info("%s is already a source, adding it again", uri)
				break
			}
		}
	}

	first := len(a.Config.File.Sources)
	a.Config.AddSources(uris...)
	if err := a.Config.Save(); err != nil {
		return err
	}

	for i, uri := range uris {
		logger.Success("Added [%d] %s", first+i, uri)
	}
	return nil
}
