package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for palette documents.
//
// Names are indexed twice: as typed with English stemming, and folded (lowercase,
// no diacritics) with the standard analyzer. Owner, mode and colours are keywords.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields ---

	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = en.AnalyzerName
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	foldedFieldMapping := bleve.NewTextFieldMapping()
	foldedFieldMapping.Analyzer = standard.Name
	foldedFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("name_folded", foldedFieldMapping)

	// --- Keyword fields ---

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	userFieldMapping := bleve.NewTextFieldMapping()
	userFieldMapping.Analyzer = keyword.Name
	userFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("user_id", userFieldMapping)

	modeFieldMapping := bleve.NewTextFieldMapping()
	modeFieldMapping.Analyzer = keyword.Name
	modeFieldMapping.Store = true
	modeFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("mode", modeFieldMapping)

	// Colours are lowercase #rrggbb, matched exactly.
	colorsFieldMapping := bleve.NewTextFieldMapping()
	colorsFieldMapping.Analyzer = keyword.Name
	colorsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("colors", colorsFieldMapping)

	// --- Numeric fields ---

	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
