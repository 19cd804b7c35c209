package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dealrag/src/core/assistant"
	"dealrag/src/infrastructure/journal"
	"dealrag/src/log"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question answering loop",
	Long: `The chat command reads questions from stdin, answers them from the
indexed documents and journals every exchange to the history store.
Type 'exit' or 'quit' to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sdk := newWeaviateSDK()
	oc := newOllamaClient()
	assistantSvc := assistant.NewService(newSearchService(sdk, oc), oc, viper.GetString("models.chat"))

	store, err := newHistoryStore()
	if err != nil {
		return err
	}

	wmLogger := watermill.NewStdLogger(false, false)
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
	defer pubsub.Close()

	router, err := journal.NewRouter(wmLogger)
	if err != nil {
		return err
	}
	journal.AddPersistHandler(router, pubsub, store)
	defer router.Close()

	go func() {
		if err := router.Run(ctx); err != nil {
			log.Error(err, "journal router stopped")
		}
	}()
	<-router.Running()

	journalSvc, err := journal.NewService(pubsub)
	if err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		fmt.Println("\nExiting...")
		cancel()
		os.Exit(0)
	}()

	log.Info("entering interactive mode")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYour question (type 'exit' to quit): ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			fmt.Println("Goodbye!")
			break
		}

		log.Info("new query", "query", query)
		answer, err := assistantSvc.Ask(ctx, query)
		if err != nil {
			log.Error(err, "query failed", "query", query)
			fmt.Println("[ERROR] Query failed. See logs for details.")
			continue
		}

		printAnswer(answer)

		if _, err := journalSvc.Record(ctx, answer.Query, answer.Text, answer.Sources, answer.Products); err != nil {
			log.Error(err, "failed to journal exchange", "query", query)
		}
	}

	return scanner.Err()
}

func printAnswer(answer *assistant.Answer) {
	if len(answer.Products) > 0 {
		fmt.Println("\nProduct info:")

		names := make([]string, 0, len(answer.Products))
		for name := range answer.Products {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Printf("  %s\n", name)
			for _, e := range answer.Products[name] {
				fmt.Printf("    - %s: %.2f (%s -> %.2f)\n", e.Source, e.Price, e.Discount, e.DiscountedPrice)
			}
		}
	} else {
		fmt.Println("\nAnswer:", strings.TrimSpace(answer.Text))
	}

	if answer.Sources != "" {
		fmt.Println("\nSources:", answer.Sources)
	}
}
