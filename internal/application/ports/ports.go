package ports

import (
	"context"
	"io"

	"github.com/jhoicas/Bizboard-api/internal/application/dto"
	"github.com/jhoicas/Bizboard-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a ella.
// Si fn devuelve error se hace rollback y ningún cambio queda persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}

// ImageStore puerto de salida para el almacén de imágenes (logo del negocio).
type ImageStore interface {
	// Upload guarda el objeto bajo key y devuelve su URL pública.
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// ReportRenderer genera el documento del reporte analítico.
type ReportRenderer interface {
	RenderAnalytics(report dto.AnalyticsReport) ([]byte, error)
}
