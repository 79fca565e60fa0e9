package commands

import (
	"encoding/json"
	"strings"

	"github.com/health-center-lookup/app/models"
	"github.com/health-center-lookup/app/services"
	"github.com/health-center-lookup/internal/resolver"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Answer one chat message",
	Long:  "Extract entities from the message, resolve them against the dataset and print the reply.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

type askOutput struct {
	Message    string                `json:"message"`
	Normalized string                `json:"normalized"`
	Entities   models.Entities       `json:"entities"`
	Level      resolver.Level        `json:"level"`
	Centers    []models.HealthCenter `json:"center_info"`
	Response   string                `json:"response"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	engine, err := openEngine(cfg, logger)
	if err != nil {
		return err
	}

	message := strings.Join(args, " ")
	entities := engine.ExtractEntities(message)
	result := engine.Lookup(entities)

	out := askOutput{
		Message:    message,
		Normalized: engine.Normalize(message),
		Entities:   entities,
		Level:      result.Level,
		Centers:    result.Records,
		Response:   services.NewReplyService().Format(entities, result.Records),
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
