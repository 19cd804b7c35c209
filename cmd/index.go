package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/weaviate/weaviate/entities/models"

	"dealrag/src/docctrl"
	"dealrag/src/log"
	"dealrag/src/storage/weaviate"
)

const importBatchSize = 64

var (
	rebuildIndex bool
	docsOverride string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the vector index from the local document set",
	Long: `The index command scans the documents directory for CSV and text
files, splits them into chunks, embeds each chunk and imports the vectors
into Weaviate. With --rebuild the existing class is dropped first.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().BoolVar(&rebuildIndex, "rebuild", false, "Drop and recreate the index class before importing")
	indexCmd.Flags().StringVar(&docsOverride, "docs", "", "Path to documents directory (overrides config)")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	docsPath := viper.GetString("paths.docs")
	if docsOverride != "" {
		docsPath = docsOverride
	}

	log.Info("scanning documents", "path", docsPath)
	files, err := docctrl.FindFiles(docsPath)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no documents found in %s", docsPath)
	}
	log.Info("found files", "count", len(files))

	docs, err := docctrl.Load(ctx, files)
	if err != nil {
		return err
	}
	log.Info("loaded documents", "count", len(docs))

	chunks, err := docctrl.Split(docs, docctrl.SplitterConfig{
		ChunkSize:    viper.GetInt("splitter.chunk_size"),
		ChunkOverlap: viper.GetInt("splitter.chunk_overlap"),
	})
	if err != nil {
		return err
	}
	log.Info("created chunks", "count", len(chunks))

	sdk := newWeaviateSDK()
	className := viper.GetString("index.class")

	if rebuildIndex {
		if err := sdk.DeleteSchema(ctx, className); err != nil {
			return fmt.Errorf("failed to drop index class: %w", err)
		}
	}
	if err := sdk.EnsureSchema(ctx, className, chunkProperties()); err != nil {
		return fmt.Errorf("failed to ensure index class: %w", err)
	}

	oc := newOllamaClient()
	embedModel := viper.GetString("models.embedding")

	bar := progressbar.Default(int64(len(chunks)), "embedding chunks")

	var imported int
	batch := make([]weaviate.VectorObject, 0, importBatchSize)
	for _, chunk := range chunks {
		embedding, err := oc.GetEmbedding(ctx, embedModel, chunk.PageContent)
		if err != nil {
			return fmt.Errorf("failed to embed chunk: %w", err)
		}

		source, _ := chunk.Metadata["source"].(string)
		batch = append(batch, weaviate.VectorObject{
			Vector: embedding,
			Properties: map[string]interface{}{
				"chunkId": uuid.New().String(),
				"content": chunk.PageContent,
				"source":  source,
			},
		})

		if len(batch) == importBatchSize {
			if err := sdk.BatchAddVectors(ctx, className, batch); err != nil {
				return err
			}
			imported += len(batch)
			batch = batch[:0]
		}
		bar.Add(1)
	}
	if len(batch) > 0 {
		if err := sdk.BatchAddVectors(ctx, className, batch); err != nil {
			return err
		}
		imported += len(batch)
	}

	log.Info("index build complete", "class", className, "chunks", imported)
	return nil
}

func chunkProperties() []*models.Property {
	return []*models.Property{
		{
			Name:        "chunkId",
			DataType:    []string{"text"},
			Description: "Stable ID assigned at import time",
		},
		{
			Name:        "content",
			DataType:    []string{"text"},
			Description: "The content of the chunk",
		},
		{
			Name:        "source",
			DataType:    []string{"text"},
			Description: "Path of the file the chunk came from",
		},
	}
}
