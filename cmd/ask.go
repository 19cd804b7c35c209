package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dealrag/src/core/assistant"
	"dealrag/src/log"
	"dealrag/src/storage/history"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := strings.Join(args, " ")

	sdk := newWeaviateSDK()
	oc := newOllamaClient()
	assistantSvc := assistant.NewService(newSearchService(sdk, oc), oc, viper.GetString("models.chat"))

	store, err := newHistoryStore()
	if err != nil {
		return err
	}

	log.Info("new query", "query", query)
	answer, err := assistantSvc.Ask(ctx, query)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	printAnswer(answer)

	// one-shot command, write the exchange synchronously so it is on disk
	// before the process exits
	node, err := snowflake.NewNode(1)
	if err != nil {
		return fmt.Errorf("failed to create snowflake node: %v", err)
	}
	exchange := &history.Exchange{
		ID:        node.Generate().Int64(),
		Timestamp: time.Now().UTC(),
		Query:     answer.Query,
		Answer:    answer.Text,
		Sources:   answer.Sources,
		Products:  answer.Products,
	}
	if err := store.Append(ctx, exchange); err != nil {
		log.Error(err, "failed to save exchange", "query", query)
	}

	return nil
}
