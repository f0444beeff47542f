package main

import (
	"testing"

	"github.com/chriscorrea/winnow/internal/ingest"
)

func TestFormatStats(t *testing.T) {
	tests := []struct {
		name  string
		stats ingest.Stats
		out   string
		want  string
	}{
		{
			name:  "all sources harvested",
			stats: ingest.Stats{Sources: 3, Harvested: 3},
			out:   "corpus.jsonl",
			want:  "harvested 3 of 3 sources into corpus.jsonl\n",
		},
		{
			name:  "failures and empty sources noted",
			stats: ingest.Stats{Sources: 5, Harvested: 2, Failed: 2, Skipped: 1},
			out:   "harvest.jsonl",
			want:  "harvested 2 of 5 sources into harvest.jsonl, 2 failed, 1 empty\n",
		},
		{
			name:  "only failures",
			stats: ingest.Stats{Sources: 2, Harvested: 1, Failed: 1},
			out:   "out.jsonl",
			want:  "harvested 1 of 2 sources into out.jsonl, 1 failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatStats(&tt.stats, tt.out); got != tt.want {
				t.Errorf("formatStats = %q, want %q", got, tt.want)
			}
		})
	}
}
