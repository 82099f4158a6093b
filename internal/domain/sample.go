package domain

// SampleMeme is a built-in demo record served when the database has no row
// for a requested ID. The video paths are root-relative and resolve against
// the configured local asset directory.
type SampleMeme struct {
	ID           string
	Title        string
	Description  string
	ThumbnailURL string
	VideoURL     string
	Tags         []string
	Views        int64
	Downloads    int64
	Country      string
	Language     string
}

// SampleMemes is the fallback dataset used until real memes are populated.
var SampleMemes = []SampleMeme{
	{
		ID:           "test-1",
		Title:        "Dj Chicken beaten to stupor!",
		Description:  "A hilarious reaction video",
		ThumbnailURL: "/placeholders/thumb1.jpg",
		VideoURL:     "/placeholders/video1.mp4",
		Tags:         []string{"djchicken", "viral", "funny"},
		Views:        3500,
		Downloads:    7400,
		Country:      "NG",
		Language:     "en",
	},
	{
		ID:           "test-2",
		Title:        "Unexpected dance in the subway",
		Description:  "Amazing impromptu dance performance",
		ThumbnailURL: "/placeholders/thumb2.jpg",
		VideoURL:     "/placeholders/video1.mp4",
		Tags:         []string{"dance", "subway"},
		Views:        124000,
		Downloads:    21000,
		Country:      "US",
		Language:     "en",
	},
}

// FindSampleMeme looks up a sample meme by ID.
func FindSampleMeme(id string) (*SampleMeme, bool) {
	for i := range SampleMemes {
		if SampleMemes[i].ID == id {
			return &SampleMemes[i], true
		}
	}
	return nil, false
}
