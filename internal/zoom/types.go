package zoom

import "time"

// Candidate is a discovered remote recording eligible for sync. Candidates
// are deduplicated by UUID across pages, date windows and identities before
// they reach the caller; only candidates with a transcript download
// reference survive discovery.
type Candidate struct {
	// UUID is the provider-assigned unique id of the meeting instance.
	UUID string

	// ID is the numeric meeting id, used for filename disambiguation.
	ID int64

	// Topic is the meeting topic as entered by the host.
	Topic string

	// StartTime is when the meeting started.
	StartTime time.Time

	// Duration is the meeting length in minutes.
	Duration int

	// ShareURL links to the provider-hosted recording.
	ShareURL string

	// TranscriptURL is the authenticated download reference for the
	// transcript payload (VTT).
	TranscriptURL string
}

// Participant is one attendee of a recorded meeting.
type Participant struct {
	Name  string `json:"name"`
	Email string `json:"user_email"`
}

// Wire types below mirror the provider's JSON payloads and stay private to
// this package; discovery converts them into Candidates.

type userListPage struct {
	NextPageToken string    `json:"next_page_token"`
	Users         []apiUser `json:"users"`
}

type apiUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type recordingListPage struct {
	NextPageToken string       `json:"next_page_token"`
	Meetings      []apiMeeting `json:"meetings"`
}

type apiMeeting struct {
	UUID           string             `json:"uuid"`
	ID             int64              `json:"id"`
	Topic          string             `json:"topic"`
	StartTime      string             `json:"start_time"`
	Duration       int                `json:"duration"`
	ShareURL       string             `json:"share_url"`
	RecordingFiles []apiRecordingFile `json:"recording_files"`
}

type apiRecordingFile struct {
	ID          string `json:"id"`
	FileType    string `json:"file_type"`
	Status      string `json:"status"`
	DownloadURL string `json:"download_url"`
}

type sessionListPage struct {
	NextPageToken string       `json:"next_page_token"`
	Sessions      []apiSession `json:"sessions"`
}

type apiSession struct {
	UUID      string `json:"uuid"`
	ID        int64  `json:"id"`
	Topic     string `json:"topic"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	ShareURL  string `json:"share_url"`
}

type sessionTranscript struct {
	Status      string `json:"status"`
	DownloadURL string `json:"download_url"`
}

type participantListPage struct {
	NextPageToken string        `json:"next_page_token"`
	Participants  []Participant `json:"participants"`
}
