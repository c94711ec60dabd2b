package initiator

import (
	"fmt"

	"github.com/MrSnakeDoc/altcat/internal/config"
	"github.com/MrSnakeDoc/altcat/internal/logger"
	"github.com/MrSnakeDoc/altcat/internal/prompter"
)

type Initiator struct {
	Config   *config.Config
	Prompter prompter.Prompter
}

func New(cfg *config.Config, p prompter.Prompter) *Initiator {
	if p == nil {
		p = prompter.Auto{}
	}
	return &Initiator{Config: cfg, Prompter: p}
}

// Execute writes a default config.yml unless one exists and force is false.
func (i *Initiator) Execute(force bool) error {
	if i.Config.Exists && !force {
		logger.Info("Configuration already exists at %s", i.Config.Path)
		return nil
	}

	file := config.Default()
	dir, err := i.Prompter.Prompt("Download directory", file.DownloadDir)
	if err != nil {
		return fmt.Errorf("failed to read download directory: %w", err)
	}
	file.DownloadDir = dir

	i.Config.File = file
	if err := i.Config.Save(); err != nil {
		return err
	}

	logger.Success("Created %s", i.Config.Path)
	return nil
}
