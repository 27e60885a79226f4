// Package content fetches conference content (speakers, stages, sponsors and
// job postings) from the DatoCMS and Sitecore Content Hub GraphQL backends.
package content

import "context"

// Image is a CMS asset rendered through an imgix transform.
type Image struct {
	URL string `json:"url"`
}

// Talk is the session a speaker presents.
type Talk struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Speaker is a conference speaker as stored in DatoCMS.
type Speaker struct {
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Twitter     string `json:"twitter"`
	Github      string `json:"github"`
	Company     string `json:"company"`
	Talk        *Talk  `json:"talk"`
	Image       *Image `json:"image"`
	ImageSquare *Image `json:"imageSquare"`
}

// ScheduleSpeaker is the speaker summary attached to a schedule slot.
type ScheduleSpeaker struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image *Image `json:"image"`
}

// ScheduleEntry is one slot on a stage.
type ScheduleEntry struct {
	Title   string           `json:"title"`
	Start   string           `json:"start"`
	End     string           `json:"end"`
	Speaker *ScheduleSpeaker `json:"speaker"`
}

// Stage is a streaming stage as stored in the Content Hub. Schedule is never
// fetched and is always empty.
type Stage struct {
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Stream   string          `json:"stream"`
	Discord  string          `json:"discord"`
	Schedule []ScheduleEntry `json:"schedule"`
}

// Link is a labelled sponsor link.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Sponsor is a sponsoring company as stored in DatoCMS.
type Sponsor struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Slug             string `json:"slug"`
	Website          string `json:"website"`
	CallToAction     string `json:"callToAction"`
	CallToActionLink string `json:"callToActionLink"`
	Discord          string `json:"discord"`
	YoutubeSlug      string `json:"youtubeSlug"`
	Tier             string `json:"tier"`
	Links            []Link `json:"links"`
	CardImage        *Image `json:"cardImage"`
	Logo             *Image `json:"logo"`
}

// Job is a job posting as stored in the Content Hub.
type Job struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CompanyName string `json:"companyName"`
	Discord     string `json:"discord"`
	Link        string `json:"link"`
}

// Provider fetches each kind of content. Every call issues one request and
// returns a fresh snapshot.
type Provider interface {
	GetAllSpeakers(ctx context.Context) ([]Speaker, error)
	GetAllStages(ctx context.Context) ([]Stage, error)
	GetAllSponsors(ctx context.Context) ([]Sponsor, error)
	GetAllJobs(ctx context.Context) ([]Job, error)
}
