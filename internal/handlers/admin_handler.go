package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/middleware"
	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/internal/services"
)

// maxImportSize caps an uploaded CSV
const maxImportSize = 10 << 20

// AdminHandler handles hierarchy management, reports, bulk imports and jobs
type AdminHandler struct {
	hierarchy *services.HierarchyService
	reports   *services.ReportService
	imports   *services.ImportService
	sales     *services.SalesService
	cron      *services.CronService
	logger    *logrus.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	hierarchy *services.HierarchyService,
	reports *services.ReportService,
	imports *services.ImportService,
	sales *services.SalesService,
	cron *services.CronService,
	logger *logrus.Logger,
) *AdminHandler {
	return &AdminHandler{
		hierarchy: hierarchy,
		reports:   reports,
		imports:   imports,
		sales:     sales,
		cron:      cron,
		logger:    logger,
	}
}

// LinkEmployee handles POST /api/v1/admin/employees/:id/link
func (h *AdminHandler) LinkEmployee(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req models.LinkEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.hierarchy.LinkEmployee(middleware.MustGetSession(c), id, req.PurseID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// OltReport handles GET /api/v1/admin/reports/olt?search=
func (h *AdminHandler) OltReport(c *gin.Context) {
	rows, err := h.reports.OltReport(middleware.MustGetSession(c), c.Query("search"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": rows})
}

// KamReport handles GET /api/v1/admin/reports/kam?circle=
func (h *AdminHandler) KamReport(c *gin.Context) {
	rows, err := h.reports.KamReport(middleware.MustGetSession(c), c.Query("circle"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": rows})
}

// KamAccounts handles GET /api/v1/admin/reports/kam/:persNo/accounts
func (h *AdminHandler) KamAccounts(c *gin.Context) {
	accounts, err := h.reports.KamAccounts(middleware.MustGetSession(c), c.Param("persNo"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// ImportOlt handles POST /api/v1/admin/import/olt
func (h *AdminHandler) ImportOlt(c *gin.Context) {
	h.importCSV(c, h.imports.ImportOlt)
}

// ImportEmployeeMaster handles POST /api/v1/admin/import/employee-master
func (h *AdminHandler) ImportEmployeeMaster(c *gin.Context) {
	h.importCSV(c, h.imports.ImportEmployeeMaster)
}

type importFunc func(sess authz.Session, r io.Reader) (*models.ImportResult, error)

// importCSV accepts a multipart upload in the "file" field or a raw text/csv body
func (h *AdminHandler) importCSV(c *gin.Context, fn importFunc) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)

	var body io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "CSV file is required in the 'file' field")
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			badRequest(c, "Could not read uploaded file")
			return
		}
		defer file.Close()
		body = file
	}

	result, err := fn(middleware.MustGetSession(c), body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RunEventLifecycle handles POST /api/v1/admin/jobs/event-lifecycle
func (h *AdminHandler) RunEventLifecycle(c *gin.Context) {
	completed, err := h.cron.RunEventLifecycleNow(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": completed})
}

// JobStatus handles GET /api/v1/admin/jobs
func (h *AdminHandler) JobStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.cron.GetJobStatus())
}

// InvalidateFinanceCache handles POST /api/v1/admin/cache/finance/invalidate?circle=
// after finance collections are loaded.
func (h *AdminHandler) InvalidateFinanceCache(c *gin.Context) {
	if err := h.sales.InvalidateFinance(c.Request.Context(), c.Query("circle")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Finance summary cache invalidated"})
}
