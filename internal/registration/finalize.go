package registration

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"edureg/internal/staging"
	"edureg/internal/storage"
	"edureg/internal/wizard"
	"edureg/pkg/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Uploader stores attachment bytes and returns the stored path. Delete
// removes a stored object.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ProfileStore persists institution profiles keyed by account id.
type ProfileStore interface {
	Upsert(ctx context.Context, profile *types.InstitutionProfile) error
}

type Finalizer struct {
	logger      *logrus.Logger
	uploader    Uploader
	profiles    ProfileStore
	concurrency int
}

func NewFinalizer(logger *logrus.Logger, uploader Uploader, profiles ProfileStore, concurrency int) *Finalizer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Finalizer{logger: logger, uploader: uploader, profiles: profiles, concurrency: concurrency}
}

// Finalize materializes the staged pending profile: attachments are uploaded,
// the profile row is upserted and the staged payload and wizard draft are
// removed. On failure the payload stays staged and the objects uploaded by
// this run are deleted again.
func (f *Finalizer) Finalize(ctx context.Context, store staging.Store) (*types.InstitutionProfile, error) {
	pending, err := Pending(ctx, store)
	if err != nil {
		return nil, err
	}

	entry := f.logger.WithField("account_id", pending.AccountID)

	profile, uploads := buildProfile(pending)

	var (
		mu       sync.Mutex
		uploaded = make([]string, 0, len(uploads))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for _, u := range uploads {
		g.Go(func() error {
			stored, err := f.uploader.Upload(gctx, u.key, u.attachment.Content, u.attachment.MimeType)
			if err != nil {
				return fmt.Errorf("failed to upload %s: %w", u.attachment.Name, err)
			}
			*u.dst = stored
			mu.Lock()
			uploaded = append(uploaded, stored)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		entry.WithError(err).Error("failed to upload registration attachments")
		f.rollback(ctx, entry, uploaded)
		return nil, &types.SubmissionError{Message: "could not upload your documents, please try again", Err: err}
	}

	if err := f.profiles.Upsert(ctx, profile); err != nil {
		entry.WithError(err).Error("failed to persist institution profile")
		f.rollback(ctx, entry, uploaded)
		return nil, &types.SubmissionError{Message: "could not save your institution profile, please try again", Err: err}
	}

	if err := store.RemoveItem(ctx, types.StagingKeyPendingProfile); err != nil {
		entry.WithError(err).Warn("failed to remove staged pending profile")
	}
	if err := wizard.Clear(ctx, store); err != nil {
		entry.WithError(err).Warn("failed to remove wizard draft")
	}

	entry.WithField("uploads", len(uploads)).Info("institution profile finalized")

	return profile, nil
}

// rollback deletes objects stored by a failed run. Failures are logged only.
func (f *Finalizer) rollback(ctx context.Context, entry *logrus.Entry, keys []string) {
	for _, key := range keys {
		if err := f.uploader.Delete(context.WithoutCancel(ctx), key); err != nil {
			entry.WithError(err).WithField("key", key).Warn("failed to delete orphaned attachment")
		}
	}
}

type upload struct {
	attachment types.Attachment
	key        string
	dst        *string
}

// buildProfile maps the staged form onto the persisted profile. Attachment
// path fields are filled in by the returned uploads; attachments that are
// already stored keep their path.
func buildProfile(pending *types.PendingProfile) (*types.InstitutionProfile, []upload) {
	steps := pending.State.Steps
	accountID := pending.AccountID
	uploads := make([]upload, 0)

	attach := func(a types.Attachment, category types.AttachmentCategory, prefix string, dst *string) {
		if a.IsStored() {
			*dst = a.StoredPath
			return
		}
		uploads = append(uploads, upload{
			attachment: a,
			key:        storage.ObjectKey(category, accountID, prefix, a.Name),
			dst:        dst,
		})
	}
	attachOne := func(a *types.Attachment, category types.AttachmentCategory, prefix string, dst *string) {
		if a != nil {
			attach(*a, category, prefix, dst)
		}
	}
	attachMany := func(list []types.Attachment, category types.AttachmentCategory, prefix string) []string {
		paths := make([]string, len(list))
		for i, a := range list {
			attach(a, category, prefix+strconv.Itoa(i), &paths[i])
		}
		return paths
	}

	basic := steps.BasicInfo
	p := &types.InstitutionProfile{
		ID:                   accountID,
		Email:                basic.Email,
		InstitutionName:      basic.InstitutionName,
		InstitutionType:      basic.InstitutionType,
		InstitutionTypeOther: optional(basic.InstitutionTypeOther),
		EstablishmentYear:    optional(basic.EstablishmentYear),
		RegistrationNumber:   basic.RegistrationNumber,
		PAN:                  basic.PAN,
		ContactNumber:        basic.ContactNumber,
		Website:              optional(basic.Website),
		Address:              basic.Address,
		City:                 basic.City,
		State:                basic.State,
		Pincode:              basic.Pincode,
		OwnerName:            basic.OwnerName,
		OwnerContact:         basic.OwnerContact,
		Status:               types.InstitutionStatusPendingReview,
		CreatedAt:            pending.CreatedAt,
	}
	if basic.Logo != nil {
		p.LogoPath = new(string)
		attachOne(basic.Logo, types.CategoryLogos, "logo", p.LogoPath)
	}

	infra := steps.Infrastructure
	p.Infrastructure = types.InfrastructureRecord{
		CampusArea:       infra.CampusArea,
		ClassroomCount:   infra.ClassroomCount,
		SeatingCapacity:  infra.SeatingCapacity,
		Facilities:       infra.Facilities,
		TransportDetails: infra.TransportDetails,
		PhotoPaths:       attachMany(infra.Photos, types.CategoryPhotographs, "campus"),
	}

	courses := steps.CoursesFees
	p.CoursesFees = types.CoursesFeesRecord{
		TeachingMedium:       courses.TeachingMedium,
		TeachingMediumOther:  courses.TeachingMediumOther,
		AffiliationBoard:     courses.AffiliationBoard,
		Courses:              courses.Courses,
		ScholarshipAvailable: courses.ScholarshipAvailable,
		ScholarshipDetails:   courses.ScholarshipDetails,
	}
	attachOne(courses.FeeStructure, types.CategoryDocuments, "fees", &p.CoursesFees.FeeStructurePath)

	p.Faculty = types.FacultyRecord(steps.Faculty)

	results := steps.Results
	p.Results = types.ResultsRecord{
		PassPercentage: results.PassPercentage,
		ExamResults:    results.ExamResults,
		Achievements:   results.Achievements,
		AwardPaths:     attachMany(results.Awards, types.CategoryCertificates, "award"),
	}

	docs := steps.Documents
	attachOne(docs.RegistrationCertificate, types.CategoryLicenses, "registration", &p.Documents.RegistrationCertificate)
	attachOne(docs.AffiliationCertificate, types.CategoryCertificates, "affiliation", &p.Documents.AffiliationCertificate)
	attachOne(docs.PANCard, types.CategoryDocuments, "pan", &p.Documents.PANCard)
	attachOne(docs.AddressProof, types.CategoryDocuments, "address", &p.Documents.AddressProof)
	attachOne(docs.OwnerIDProof, types.CategoryDocuments, "owner-id", &p.Documents.OwnerIDProof)
	p.Documents.Additional = attachMany(docs.Additional, types.CategoryDocuments, "additional")

	decl := steps.Declaration
	p.Declaration = types.DeclarationRecord{
		AccountHolder:       decl.AccountHolder,
		BankName:            decl.BankName,
		AccountNumberLast4:  last4(decl.AccountNumber),
		IFSC:                decl.IFSC,
		TermsAccepted:       decl.TermsAccepted,
		InformationDeclared: decl.InformationDeclared,
		SignatoryName:       decl.SignatoryName,
	}

	return p, uploads
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func last4(s string) string {
	if len(s) <= 4 {
		return s
	}
	return s[len(s)-4:]
}
