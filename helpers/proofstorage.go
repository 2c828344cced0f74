package helpers

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ProofStorage persists an uploaded proof screenshot under the chosen
// stored name.
type ProofStorage interface {
	Save(ctx context.Context, file multipart.File, storedName string) error
}

// LocalProofStorage writes proofs to the uploads directory that gin
// serves at /uploads.
type LocalProofStorage struct {
	Dir string
}

func NewLocalProofStorage(dir string) (*LocalProofStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload folder %s: %w", dir, err)
	}
	return &LocalProofStorage{Dir: dir}, nil
}

func (s *LocalProofStorage) Save(ctx context.Context, file multipart.File, storedName string) error {
	// storedName comes from BuildProofFilename, but refuse path components
	// here too in case a caller ever hands through raw input
	if storedName != filepath.Base(storedName) {
		return fmt.Errorf("unsafe proof filename %q", storedName)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	dst, err := os.Create(filepath.Join(s.Dir, storedName))
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// CloudinaryProofStorage uploads proofs to Cloudinary instead of local
// disk. Selected when CLOUDINARY_URL is set.
type CloudinaryProofStorage struct {
	cld    *cloudinary.Cloudinary
	Folder string
}

func NewCloudinaryProofStorage(cloudinaryURL, folder string) (*CloudinaryProofStorage, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		log.Println("❌ [ProofStorage] Cloudinary init error:", err)
		return nil, err
	}
	return &CloudinaryProofStorage{cld: cld, Folder: folder}, nil
}

func (s *CloudinaryProofStorage) Save(ctx context.Context, file multipart.File, storedName string) error {
	// Reset file pointer before upload
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   s.Folder,
		PublicID: storedName,
	})
	if err != nil {
		log.Println("❌ [ProofStorage] Cloudinary upload error:", err)
	}
	return err
}
