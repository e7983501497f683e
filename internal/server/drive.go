// ABOUTME: Drive abstraction over the remote backup file.
// ABOUTME: The Google implementation finds, overwrites, or creates one named file.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// BackupFileName is the fixed name of the single remote backup file.
const BackupFileName = "gratis-training-backup.json"

// ErrNoRemoteFile indicates no backup file exists on the drive.
var ErrNoRemoteFile = errors.New("no backup file found")

// ErrTokenRejected indicates the provider refused the access token.
var ErrTokenRejected = errors.New("access token rejected by provider")

// Drive stores and retrieves the backup file on behalf of a user,
// authenticated per call with the user's access token.
type Drive interface {
	// Upload replaces the backup file's content, creating the file if
	// absent. Returns the remote file id.
	Upload(ctx context.Context, accessToken string, content []byte) (string, error)

	// Download returns the backup file's content, or ErrNoRemoteFile.
	Download(ctx context.Context, accessToken string) ([]byte, error)
}

// googleDrive implements Drive against the Google Drive v3 API.
type googleDrive struct{}

// NewGoogleDrive returns a Drive backed by the Google Drive API.
func NewGoogleDrive() Drive {
	return &googleDrive{}
}

func driveService(ctx context.Context, accessToken string) (*drive.Service, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := drive.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return svc, nil
}

// findBackupFile locates the backup file by exact name, skipping trashed
// files. First match wins; zero matches means no backup yet.
func findBackupFile(ctx context.Context, svc *drive.Service) (string, error) {
	query := fmt.Sprintf("name='%s' and trashed=false", BackupFileName)
	list, err := svc.Files.List().Q(query).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", mapDriveError("list files", err)
	}
	if len(list.Files) == 0 {
		return "", ErrNoRemoteFile
	}
	return list.Files[0].Id, nil
}

func (g *googleDrive) Upload(ctx context.Context, accessToken string, content []byte) (string, error) {
	svc, err := driveService(ctx, accessToken)
	if err != nil {
		return "", err
	}

	fileID, err := findBackupFile(ctx, svc)
	if err != nil && !errors.Is(err, ErrNoRemoteFile) {
		return "", err
	}

	if fileID != "" {
		updated, err := svc.Files.Update(fileID, &drive.File{}).
			Media(strings.NewReader(string(content))).Context(ctx).Do()
		if err != nil {
			return "", mapDriveError("update file", err)
		}
		return updated.Id, nil
	}

	created, err := svc.Files.Create(&drive.File{Name: BackupFileName}).
		Media(strings.NewReader(string(content))).Context(ctx).Do()
	if err != nil {
		return "", mapDriveError("create file", err)
	}
	return created.Id, nil
}

func (g *googleDrive) Download(ctx context.Context, accessToken string) ([]byte, error) {
	svc, err := driveService(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	fileID, err := findBackupFile(ctx, svc)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Files.Get(fileID).Download()
	if err != nil {
		return nil, mapDriveError("download file", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file content: %w", err)
	}
	return data, nil
}

// mapDriveError distinguishes a rejected credential from other provider
// failures so the handler can answer 401 instead of 502.
func mapDriveError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == 401 || apiErr.Code == 403) {
		return ErrTokenRejected
	}
	return fmt.Errorf("%s: %w", op, err)
}
