package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/atlashq/atlas-project-service/entity"
	"github.com/atlashq/atlas-project-service/infra/produce"
	"github.com/atlashq/atlas-project-service/repository"
	"github.com/atlashq/atlas-project-service/utils"
)

// downloadURLExpiry bounds presigned GET URLs, both for client downloads and
// for the URLs handed to the extraction worker.
const downloadURLExpiry = 60 * time.Second

const mimeTypePDF = "application/pdf"

var errUnsupportedFileType = errors.New("unsupported file type")

// UploadFiles stores a multipart batch: every file is sniffed, written to
// object storage under a generated key and recorded in one insert. Storage
// writes run in parallel; the first failure aborts the whole batch before
// any row is created (objects already written are not rolled back). PDFs get
// an extraction job published after the rows exist.
func (ctrl *Controller) UploadFiles(c *gin.Context) {
	ctx := c.Request.Context()

	project, ok := ctrl.resolveProject(c, false)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.JSON400(c, "Invalid multipart form")
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		utils.JSON400(c, "No file uploaded.")
		return
	}

	files := make([]*entity.File, len(fileHeaders))
	g, gctx := errgroup.WithContext(ctx)
	for i, fh := range fileHeaders {
		g.Go(func() error {
			src, err := fh.Open()
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", fh.Filename, err)
			}
			defer src.Close()

			data, err := io.ReadAll(src)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", fh.Filename, err)
			}

			// The client-supplied content type is untrusted; sniff
			// the actual bytes.
			mtype := mimetype.Detect(data)
			ext := mtype.Extension()
			if ext == "" {
				return fmt.Errorf("%w: %s", errUnsupportedFileType, fh.Filename)
			}

			key := fmt.Sprintf("projects/%s/%s%s", project.ID, uuid.New(), ext)
			err = ctrl.Infra.Storage.PutObject(gctx, key, data, mtype.String(), map[string]string{
				"filename": fh.Filename,
			})
			if err != nil {
				return err
			}

			files[i] = &entity.File{
				ProjectID:        project.ID,
				Path:             key,
				Size:             int64(len(data)),
				MimeType:         mtype.String(),
				OriginalFilename: fh.Filename,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, errUnsupportedFileType) {
			utils.JSON400(c, "Unsupported file type.")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Upload batch failed for project %s: %v", project.ID, err)
		utils.JSON500(c, "Failed to upload files")
		return
	}

	if err := ctrl.Repository.Files.CreateBatch(ctx, files); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to create file records: %v", err)
		utils.JSON500(c, "Failed to create file records")
		return
	}

	ctrl.scheduleExtraction(c, files)

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[File] Uploaded %d files to project %s", len(files), project.ID)
	utils.JSON201(c, files)
}

// scheduleExtraction publishes a text-extraction job for every PDF in the
// batch. The upload has already succeeded; publish failures are logged and
// swallowed.
func (ctrl *Controller) scheduleExtraction(c *gin.Context, files []*entity.File) {
	ctx := c.Request.Context()

	for _, file := range files {
		if file.MimeType != mimeTypePDF {
			continue
		}

		downloadURL, err := ctrl.Infra.Storage.PresignedGetURL(ctx, file.Path, file.OriginalFilename, downloadURLExpiry)
		if err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to presign %s for extraction: %v", file.Path, err)
			continue
		}

		err = ctrl.Infra.Produce.Extraction.PublishExtractDocument(ctx, produce.ExtractDocumentMessage{
			FileID:      file.ID.String(),
			DownloadURL: downloadURL,
		})
		if err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to schedule extraction for file %s: %v", file.ID, err)
		}
	}
}

func (ctrl *Controller) ListFiles(c *gin.Context) {
	ctx := c.Request.Context()

	project, ok := ctrl.resolveProject(c, false)
	if !ok {
		return
	}

	files, err := ctrl.Repository.Files.ListByProject(ctx, project.ID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to list files: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}
	utils.JSON200(c, gin.H{"files": files})
}

func (ctrl *Controller) ReadFile(c *gin.Context) {
	file, ok := ctrl.resolveFile(c)
	if !ok {
		return
	}
	utils.JSON200(c, file)
}

// BatchDeleteFiles removes objects from storage in parallel, then deletes
// the rows in one commit. Any storage failure aborts the operation: rows are
// left intact even though some objects may already be gone. This is the
// strict counterpart to the hard-delete path, which logs and continues.
func (ctrl *Controller) BatchDeleteFiles(c *gin.Context) {
	ctx := c.Request.Context()

	project, ok := ctrl.resolveProject(c, false)
	if !ok {
		return
	}

	rawIDs := c.QueryArray("ids")
	if len(rawIDs) == 0 {
		utils.JSON400(c, "No file ids provided.")
		return
	}

	seen := make(map[uuid.UUID]struct{}, len(rawIDs))
	fileIDs := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.JSON400(c, "Invalid file id: "+raw)
			return
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		fileIDs = append(fileIDs, id)
	}

	files, err := ctrl.Repository.Files.FindByIDsAndProject(ctx, fileIDs, project.ID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to query files for deletion: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}
	if len(files) == 0 {
		utils.JSON404(c, "File not found in database")
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, file := range files {
		g.Go(func() error {
			return ctrl.Infra.Storage.DeleteObject(gctx, file.Path)
		})
	}
	if err := g.Wait(); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Storage delete failed, keeping database records: %v", err)
		utils.JSON500(c, "Failed to delete files from storage")
		return
	}

	matchedIDs := make([]uuid.UUID, 0, len(files))
	for _, file := range files {
		matchedIDs = append(matchedIDs, file.ID)
	}
	if err := ctrl.Repository.Files.DeleteByIDs(ctx, matchedIDs, project.ID); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to delete file records: %v", err)
		utils.JSON500(c, "Internal server error")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[File] Deleted %d files from project %s", len(files), project.ID)
	utils.JSON204(c)
}

func (ctrl *Controller) DownloadFile(c *gin.Context) {
	ctx := c.Request.Context()

	file, ok := ctrl.resolveFile(c)
	if !ok {
		return
	}

	downloadURL, err := ctrl.Infra.Storage.PresignedGetURL(ctx, file.Path, file.OriginalFilename, downloadURLExpiry)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to presign %s: %v", file.Path, err)
		utils.JSON500(c, "Failed to generate download URL")
		return
	}

	utils.JSON200(c, gin.H{"download_url": downloadURL})
}

// ExtractBoundingBoxes runs the configured vision provider against the file's
// image and its extracted text. Requires a completed text extraction.
func (ctrl *Controller) ExtractBoundingBoxes(c *gin.Context) {
	ctx := c.Request.Context()

	file, ok := ctrl.resolveFile(c)
	if !ok {
		return
	}

	if file.ProcessedAt == nil {
		utils.JSON400(c, "File has not been processed yet.")
		return
	}

	imageURL, err := ctrl.Infra.Storage.PresignedGetURL(ctx, file.Path, "", downloadURLExpiry)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to presign %s: %v", file.Path, err)
		utils.JSON500(c, "Failed to generate image URL")
		return
	}

	documentContents := map[string]string{}
	if file.Contents != nil {
		documentContents[file.OriginalFilename] = *file.Contents
	}

	systemPrompt := c.Query("system_prompt")
	assistantPrompt := c.DefaultQuery("assistant_prompt", "Detect all objects in this image and provide bounding boxes for each of them.")

	result, err := ctrl.Infra.Vision.ExtractBoundingBoxes(ctx, imageURL, documentContents, systemPrompt, assistantPrompt)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Bounding box extraction failed for file %s: %v", file.ID, err)
		utils.JSON500(c, "Bounding box extraction failed")
		return
	}

	if raw, err := json.Marshal(result); err == nil {
		if err := ctrl.Repository.Files.SaveDetections(ctx, file.ID, datatypes.JSON(raw)); err != nil {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Failed to persist detections for file %s: %v", file.ID, err)
		}
	}

	utils.JSON200(c, result)
}

func (ctrl *Controller) resolveFile(c *gin.Context) (*entity.File, bool) {
	ctx := c.Request.Context()

	project, ok := ctrl.resolveProject(c, false)
	if !ok {
		return nil, false
	}

	fileID, err := uuid.Parse(c.Param("fileID"))
	if err != nil {
		utils.JSON404(c, "File not found in database")
		return nil, false
	}

	file, err := ctrl.Repository.Files.FindByIDAndProject(ctx, fileID, project.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to resolve file %s: %v", fileID, err)
			utils.JSON500(c, "Internal server error")
			return nil, false
		}
		utils.JSON404(c, "File not found in database")
		return nil, false
	}
	return file, true
}
