package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// KnowledgeDoc is one document of shared agricultural knowledge
type KnowledgeDoc struct {
	Title    string `yaml:"title" json:"title"`
	Content  string `yaml:"content" json:"content"`
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
	Tags     string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Seeder loads shared knowledge documents into the vector store as
// general-kind entries, chunking and embedding each document.
type Seeder struct {
	embedder interfaces.Embedder
	store    interfaces.VectorStore
	chunker  interfaces.Chunker
	logger   interfaces.Logger
}

// NewSeeder creates a knowledge seeder
func NewSeeder(embedder interfaces.Embedder, store interfaces.VectorStore, chunker interfaces.Chunker, logger interfaces.Logger) *Seeder {
	return &Seeder{embedder: embedder, store: store, chunker: chunker, logger: logger}
}

// Seed chunks, embeds and inserts the documents. Documents with empty
// content are skipped. Returns the number of entries inserted.
func (s *Seeder) Seed(ctx context.Context, docs []KnowledgeDoc) (int, error) {
	var entries []*types.VectorEntry
	for _, doc := range docs {
		chunks, err := s.chunker.Chunk(ctx, doc.Content)
		if err != nil {
			return 0, err
		}
		if len(chunks) == 0 {
			s.logger.Warn("skipping empty knowledge document", map[string]interface{}{
				"title": doc.Title,
			})
			continue
		}

		vectors, err := s.embedder.EmbedBatch(ctx, chunks)
		if err != nil {
			return 0, err
		}

		for i, chunk := range chunks {
			title := doc.Title
			if len(chunks) > 1 {
				title = fmt.Sprintf("%s (%d/%d)", doc.Title, i+1, len(chunks))
			}
			entries = append(entries, types.NewVectorEntry("", vectors[i], types.EntryMetadata{
				Title:     title,
				Content:   chunk,
				Category:  doc.Category,
				Tags:      doc.Tags,
				Timestamp: time.Now(),
			}))
		}
	}

	if len(entries) == 0 {
		return 0, nil
	}
	if err := s.store.InsertBatch(ctx, entries); err != nil {
		return 0, err
	}

	s.logger.Info("knowledge base seeded", map[string]interface{}{
		"documents": len(docs),
		"entries":   len(entries),
	})
	return len(entries), nil
}

// DefaultKnowledge returns a starter knowledge base covering the major
// query categories.
func DefaultKnowledge() []KnowledgeDoc {
	return []KnowledgeDoc{
		{
			Title:    "Rice cultivation basics",
			Category: "crop",
			Tags:     "rice,paddy,kharif",
			Content: "Rice grows best in clayey loam soil that holds water. Transplant " +
				"25-30 day old seedlings at the onset of the monsoon. Maintain 2-5 cm " +
				"of standing water during tillering. Apply nitrogen in three splits: " +
				"at transplanting, tillering and panicle initiation. Harvest when 80 " +
				"percent of the grains turn golden yellow.",
		},
		{
			Title:    "Wheat sowing and care",
			Category: "crop",
			Tags:     "wheat,rabi",
			Content: "Sow wheat from early November once daytime temperatures fall " +
				"below 25 degrees. Use 100 kg of seed per hectare with row spacing of " +
				"20 cm. The crown root initiation stage, about 21 days after sowing, " +
				"is the most critical time for the first irrigation. Four to six " +
				"irrigations are enough on loamy soil.",
		},
		{
			Title:    "Drip irrigation advantages",
			Category: "irrigation",
			Tags:     "drip,water,efficiency",
			Content: "Drip irrigation delivers water directly to the root zone and " +
				"saves 30-50 percent of water compared to flood irrigation. It suits " +
				"vegetables, cotton and orchard crops. Government subsidies under the " +
				"micro-irrigation fund cover 45-55 percent of installation cost for " +
				"small and marginal farmers.",
		},
		{
			Title:    "Common pest management",
			Category: "pest",
			Tags:     "ipm,pesticide,bollworm",
			Content: "Follow integrated pest management: monitor fields weekly, use " +
				"pheromone traps at 5 per acre, encourage natural predators, and " +
				"spray chemical pesticide only after the pest crosses the economic " +
				"threshold. For cotton bollworm, neem-based sprays in the evening are " +
				"effective early in the infestation.",
		},
		{
			Title:    "PM-KISAN and crop insurance",
			Category: "scheme",
			Tags:     "pmkisan,insurance,subsidy",
			Content: "PM-KISAN provides 6000 rupees a year to landholding farmer " +
				"families in three installments. Pradhan Mantri Fasal Bima Yojana " +
				"insures crops at a premium of 2 percent for kharif and 1.5 percent " +
				"for rabi. Enroll through the nearest Common Service Centre with land " +
				"records and an Aadhaar card before the sowing-season cutoff.",
		},
		{
			Title:    "Soil health and fertilization",
			Category: "soil",
			Tags:     "soil,npk,compost",
			Content: "Test soil every two to three years through the soil health card " +
				"scheme. Most Indian soils lack nitrogen and organic carbon. Apply " +
				"farmyard manure or compost at 5-10 tonnes per hectare before sowing, " +
				"and balance NPK doses to the soil test instead of using urea alone. " +
				"Green manuring with dhaincha restores nitrogen naturally.",
		},
	}
}
