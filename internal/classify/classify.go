// Package classify partitions media records into display category buckets.
package classify

import "medialetter/internal/core"

// Buckets holds the result of partitioning a record list by item type. The
// partition is total and disjoint: every record lands in exactly one bucket.
type Buckets struct {
	Movies []*core.MediaRecord
	Series []*core.MediaRecord // series, seasons and episodes
	Music  []*core.MediaRecord // albums and tracks
	Other  []*core.MediaRecord
}

// Classify buckets records by their declared type. It always succeeds; an
// empty input yields four empty buckets.
func Classify(records []*core.MediaRecord) Buckets {
	var b Buckets
	for _, r := range records {
		switch r.Type {
		case core.TypeMovie:
			b.Movies = append(b.Movies, r)
		case core.TypeSeries, core.TypeSeason, core.TypeEpisode:
			b.Series = append(b.Series, r)
		case core.TypeMusicAlbum, core.TypeAudio:
			b.Music = append(b.Music, r)
		default:
			b.Other = append(b.Other, r)
		}
	}
	return b
}
