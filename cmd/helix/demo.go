package main

import (
	"time"

	"github.com/bioforge/helix/internal/core/graph"
	"github.com/bioforge/helix/internal/core/metadata"
	"github.com/bioforge/helix/internal/core/model"
)

// Bundled sample of a metabolite annotation run, in the shape annotator
// clients deliver it. Swap in real tables via [sources] paths in the config.

func demoBackbone() []model.IdentifierRecord {
	return []model.IdentifierRecord{
		{Identifier: "CHEBI:15365", IdentifierSource: "ChEBI", Target: "CID2244", TargetSource: "PubChem Compound"},
		{Identifier: "CHEBI:27732", IdentifierSource: "ChEBI", Target: "CID2519", TargetSource: "PubChem Compound"},
		{Identifier: "CHEBI:5855", IdentifierSource: "ChEBI", Target: "CID3672", TargetSource: "PubChem Compound"},
	}
}

func demoRules() graph.Rules {
	return graph.Rules{
		"opentargets_disease_associations": {EdgeLabel: "associated_with", Kind: "Disease", Namespace: "EFO"},
		"molmedb_transporter_inhibited":    {EdgeLabel: "inhibits", Kind: "Protein", Namespace: "Uniprot-TrEMBL"},
		"sider_side_effects":               {EdgeLabel: "has_side_effect", Kind: "SideEffect"},
	}
}

func demoSources() []model.SourceTable {
	queried := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
	backbone := demoBackbone()
	aspirin, caffeine, ibuprofen := backbone[0], backbone[1], backbone[2]

	return []model.SourceTable{
		{
			Name: "opentargets_disease_associations",
			Metadata: metadata.Entry{
				SourceName:    "opentargets_disease_associations",
				SourceVersion: "24.06",
				QueryDate:     queried,
				QueryDuration: 1.8,
			},
			Rows: []model.SourceRow{
				{
					IdentifierRecord: aspirin,
					Annotations: []model.Annotation{
						{ID: "EFO_0003843", Name: "pain", Attributes: map[string]any{"score": 0.72}},
						{ID: "EFO_0000537", Name: "hypertension", Attributes: map[string]any{"score": 0.41}},
					},
				},
				{
					// Queried with no result; stays in the table as a
					// placeholder and is counted, not drawn.
					IdentifierRecord: caffeine,
					Annotations:      []model.Annotation{{}},
				},
				{
					IdentifierRecord: ibuprofen,
					Annotations: []model.Annotation{
						{ID: "EFO_0003843", Name: "pain", Attributes: map[string]any{"score": 0.65}},
					},
				},
			},
		},
		{
			Name: "molmedb_transporter_inhibited",
			Metadata: metadata.Entry{
				SourceName:    "molmedb_transporter_inhibited",
				SourceVersion: "2024-01",
				QueryDate:     queried,
				QueryDuration: 0.9,
			},
			Rows: []model.SourceRow{
				{
					IdentifierRecord: aspirin,
					Annotations: []model.Annotation{
						{ID: "P08183", Namespace: "Uniprot-TrEMBL", Name: "ABCB1", Relation: "inhibits"},
					},
				},
				{
					// Identity tuple the backbone does not carry; the
					// combiner drops it with a warning.
					IdentifierRecord: model.IdentifierRecord{
						Identifier: "CHEBI:99999", IdentifierSource: "ChEBI",
						Target: "CID99999", TargetSource: "PubChem Compound",
					},
					Annotations: []model.Annotation{
						{ID: "P46721", Namespace: "Uniprot-TrEMBL", Name: "SLCO1A2"},
					},
				},
			},
		},
		{
			Name: "sider_side_effects",
			Metadata: metadata.Entry{
				SourceName:    "sider_side_effects",
				SourceVersion: "4.1",
				QueryDate:     queried,
				QueryDuration: 0.4,
			},
			Rows: []model.SourceRow{
				{
					IdentifierRecord: aspirin,
					Annotations: []model.Annotation{
						{Name: "nausea"},
						{Name: "gastric ulcer"},
					},
				},
				{
					IdentifierRecord: caffeine,
					Annotations: []model.Annotation{
						{Name: "insomnia"},
						{Name: "nausea"},
					},
				},
			},
		},
	}
}
