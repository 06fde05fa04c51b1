package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/repositories"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
)

const resultsSheet = "Resultados"

type exportService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewExportService(repo repositories.Repository, logger utils.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportCourseResults writes every completed quiz of a course into an .xlsx
// workbook, one row per (student, quiz) completion.
func (s *exportService) ExportCourseResults(ctx context.Context, courseID uint) (*ExportFile, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	rows, err := s.repo.Progress().ListCourseResults(ctx, courseID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), resultsSheet)

	headers := []string{"Estudiante", "Correo", "Quiz", "Puntaje", "Fecha"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(resultsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		_ = f.SetCellStyle(resultsSheet, "A1", "E1", headerStyle)
	}

	for i, row := range rows {
		values := []interface{}{
			row.StudentName,
			row.StudentEmail,
			row.QuizTitle,
			nil,
			nil,
		}
		if row.Score != nil {
			values[3] = *row.Score
		}
		if row.FinishedAt != nil {
			values[4] = row.FinishedAt.Format("2006-01-02 15:04")
		}

		for j, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(resultsSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	_ = f.SetColWidth(resultsSheet, "A", "C", 28)
	_ = f.SetColWidth(resultsSheet, "D", "E", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	s.logger.Info("course results exported", "course_id", courseID, "rows", len(rows))
	return &ExportFile{
		Name:    exportFileName(course.Name),
		Content: buf.Bytes(),
	}, nil
}

func exportFileName(courseName string) string {
	name := strings.TrimSpace(courseName)
	if name == "" {
		name = "curso"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "_", ":", "-")
	return "resultados_" + replacer.Replace(name) + ".xlsx"
}
