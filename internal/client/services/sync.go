// Package services contains the client's application services. This file
// defines the sync engine: the single owner of the in-memory view of
// identity, jobs, and upload records. It applies optimistic local mutations,
// reconciles remote listings into local state with an id-keyed upsert, and
// persists a durable snapshot after every state change, so the view survives
// process restarts and stays usable (stale) through network failures.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Enfoirer/3D-building-generator/internal/client/api"
	"github.com/Enfoirer/3D-building-generator/internal/client/auth"
	"github.com/Enfoirer/3D-building-generator/internal/client/models"
	"github.com/Enfoirer/3D-building-generator/internal/client/snapshot"
	"github.com/Enfoirer/3D-building-generator/internal/client/upload"
	"github.com/Enfoirer/3D-building-generator/internal/common"
	"github.com/Enfoirer/3D-building-generator/internal/logging"
)

// CredentialManager is the credential lifecycle surface the engine drives.
// *auth.Manager satisfies it; tests provide fakes.
type CredentialManager interface {
	Login(ctx context.Context) (*auth.Credentials, error)
	StoredCredentials(ctx context.Context) (*auth.Credentials, error)
	Token(ctx context.Context) (string, error)
	SignOut(ctx context.Context) error
}

// State is an immutable copy of the engine's view, safe to read from any
// goroutine. SyncError carries the last background refresh failure; it is
// cleared by the next successful refresh.
type State struct {
	Identity  *models.Identity
	Jobs      []models.Job
	Uploads   []models.UploadRecord
	SyncError string
}

// SyncService reconciles local state against the backend. All mutations go
// through it; readers get consistent copies via State or Subscribe.
type SyncService struct {
	client api.Client
	creds  CredentialManager
	store  snapshot.Store
	log    logging.Logger
	now    func() time.Time

	mu        sync.RWMutex
	identity  *models.Identity
	jobs      []models.Job
	uploads   []models.UploadRecord
	syncError string

	subMu     sync.Mutex
	nextSubID int
	subs      map[int]func(State)
}

func NewSyncService(client api.Client, creds CredentialManager, store snapshot.Store, log logging.Logger) *SyncService {
	return &SyncService{
		client: client,
		creds:  creds,
		store:  store,
		log:    log,
		now:    time.Now,
		subs:   map[int]func(State){},
	}
}

// LoadCached restores the last persisted snapshot into memory, giving the
// user a stale-but-available view before any network traffic.
func (s *SyncService) LoadCached(ctx context.Context) {
	snap := s.store.Load(ctx)
	if snap == nil {
		return
	}

	s.mu.Lock()
	s.identity = snap.CurrentUser
	s.jobs = snap.Jobs
	s.uploads = snap.UploadRecords
	s.mu.Unlock()

	s.log.Info(ctx, "restored cached snapshot",
		"jobs", len(snap.Jobs), "uploads", len(snap.UploadRecords))
	s.notify()
}

// RestoreSession attempts a non-interactive session restore at startup.
// Without stored credentials it leaves identity absent and issues no remote
// calls. With them, the identity is derived and applied before the full
// refresh is issued.
func (s *SyncService) RestoreSession(ctx context.Context) error {
	creds, err := s.creds.StoredCredentials(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if creds == nil {
		s.log.Debug(ctx, "no stored credentials, staying signed out")
		return nil
	}

	if err := s.applyCredentials(ctx, creds); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Login runs the interactive flow and, on success, applies the identity and
// refreshes. A login already in flight is a no-op.
func (s *SyncService) Login(ctx context.Context) error {
	creds, err := s.creds.Login(ctx)
	if err != nil {
		if errors.Is(err, common.ErrLoginInProgress) {
			return nil
		}
		return err
	}

	if err := s.applyCredentials(ctx, creds); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// applyCredentials derives the identity from the identity token and installs
// it. This must complete before any subsequent refresh call is issued.
func (s *SyncService) applyCredentials(ctx context.Context, creds *auth.Credentials) error {
	identity, err := auth.IdentityFromToken(creds.IDToken)
	if err != nil {
		return fmt.Errorf("derive identity: %w", err)
	}

	s.mu.Lock()
	s.identity = identity
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.store.Save(ctx, snap)
	s.notify()
	return nil
}

// SignOut ends the session and discards all local history: in-memory state,
// the durable snapshot, and stored credentials. History belongs to the
// account, not the device.
func (s *SyncService) SignOut(ctx context.Context) error {
	err := s.creds.SignOut(ctx)

	s.mu.Lock()
	s.identity = nil
	s.jobs = nil
	s.uploads = nil
	s.syncError = ""
	s.mu.Unlock()

	s.store.Clear(ctx)
	s.notify()
	return err
}

// CreateUpload validates the submission, sends it, and on success merges the
// returned job and upload record before triggering a full refresh. On any
// failure local state is untouched.
func (s *SyncService) CreateUpload(ctx context.Context, datasetName, notes string, photos []upload.Photo) (*models.Job, error) {
	submission, err := upload.BuildSubmission(datasetName, notes, photos)
	if err != nil {
		return nil, err
	}

	token, err := s.creds.Token(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.SubmitUpload(ctx, token, *submission)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.jobs = models.MergeJob(s.jobs, resp.Job)
	s.uploads = models.MergeUploadRecord(s.uploads, resp.Upload)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.store.Save(ctx, snap)
	s.notify()

	s.log.Info(ctx, "upload submitted",
		"job_id", resp.Job.ID, "dataset", resp.Job.DatasetName, "photos", resp.Job.PhotoCount)

	// Refresh failures here are the background kind: recorded, not returned.
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn(ctx, "refresh after upload failed", "error", err)
	}
	return &resp.Job, nil
}

// MarkDownload logs a download server-side and merges the returned job. The
// event list is never guessed locally: the server is its source of truth.
func (s *SyncService) MarkDownload(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	token, err := s.creds.Token(ctx)
	if err != nil {
		return nil, err
	}

	job, err := s.client.LogDownload(ctx, token, jobID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.jobs = models.MergeJob(s.jobs, *job)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.store.Save(ctx, snap)
	s.notify()
	return job, nil
}

// DownloadArtifact streams the finished artifact into w and then logs the
// download event.
func (s *SyncService) DownloadArtifact(ctx context.Context, jobID uuid.UUID, w io.Writer) (int64, error) {
	token, err := s.creds.Token(ctx)
	if err != nil {
		return 0, err
	}

	n, err := s.client.FetchArtifact(ctx, token, jobID, w)
	if err != nil {
		return n, err
	}

	if _, err := s.MarkDownload(ctx, jobID); err != nil {
		s.log.Warn(ctx, "artifact fetched but download not logged", "job_id", jobID, "error", err)
	}
	return n, nil
}

// Refresh fetches the profile and the full upload and job listings, merges
// them into local state, and persists. On failure the last-known-good state
// stays displayed and the failure is recorded as a non-fatal sync error.
func (s *SyncService) Refresh(ctx context.Context) error {
	token, err := s.creds.Token(ctx)
	if err != nil {
		s.recordSyncError(err)
		return err
	}

	var (
		profile *api.Profile
		jobs    []models.Job
		uploads []models.UploadRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.client.GetProfile(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		jobs, err = s.client.ListJobs(gctx, token, nil)
		return err
	})
	g.Go(func() error {
		var err error
		uploads, err = s.client.ListUploads(gctx, token)
		return err
	})

	if err := g.Wait(); err != nil {
		s.recordSyncError(err)
		return err
	}

	s.mu.Lock()
	s.identity = s.identityFromProfile(profile)
	for _, job := range jobs {
		s.jobs = models.MergeJob(s.jobs, job)
	}
	for _, up := range uploads {
		s.uploads = models.MergeUploadRecord(s.uploads, up)
	}
	s.syncError = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.store.Save(ctx, snap)
	s.notify()

	s.log.Debug(ctx, "refresh completed", "jobs", len(jobs), "uploads", len(uploads))
	return nil
}

// identityFromProfile re-derives the identity from the server profile,
// keeping the avatar from the previous identity (profiles do not carry one).
// Callers must hold s.mu.
func (s *SyncService) identityFromProfile(profile *api.Profile) *models.Identity {
	name := profile.Name
	if name == "" {
		name = profile.Email
	}
	identity := &models.Identity{
		ID:          profile.ID,
		DisplayName: name,
		Email:       profile.Email,
	}
	if s.identity != nil {
		identity.AvatarURL = s.identity.AvatarURL
	}
	return identity
}

func (s *SyncService) recordSyncError(err error) {
	s.mu.Lock()
	s.syncError = err.Error()
	s.mu.Unlock()
	s.notify()
}

// Ping proxies a backend liveness probe.
func (s *SyncService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// State returns a consistent copy of the current view.
func (s *SyncService) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *SyncService) stateLocked() State {
	st := State{
		Jobs:      append([]models.Job(nil), s.jobs...),
		Uploads:   append([]models.UploadRecord(nil), s.uploads...),
		SyncError: s.syncError,
	}
	if s.identity != nil {
		identity := *s.identity
		st.Identity = &identity
	}
	return st
}

// snapshotLocked builds the durable snapshot for the current state.
// Callers must hold s.mu.
func (s *SyncService) snapshotLocked() *models.Snapshot {
	return &models.Snapshot{
		CurrentUser:   s.identity,
		Jobs:          append([]models.Job(nil), s.jobs...),
		UploadRecords: append([]models.UploadRecord(nil), s.uploads...),
		SavedAt:       models.NewTimestamp(s.now()),
	}
}

// Subscribe registers fn to run after every state change and returns an
// unsubscribe function. fn receives a copy and may be called from any
// goroutine that mutates the engine.
func (s *SyncService) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *SyncService) notify() {
	state := s.State()

	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
