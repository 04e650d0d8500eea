package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kaytu-io/cloud-catalog/pkg/describe"
)

func (h *HttpHandler) Register(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.GET("/accounts", h.ListAccounts)
	v1.GET("/accounts/:account", h.GetAccount)
	v1.GET("/accounts/:account/status", h.GetAccountStatus)

	v1.GET("/functions/:account", h.ListFunctions)
	v1.GET("/functions/:account/:id", h.GetFunction)
	v1.GET("/functions/:account/:id/policy", h.GetFunctionPolicy)

	v1.GET("/container-clusters/:account", h.ListContainerClusters)
	v1.GET("/container-clusters/:account/:id", h.GetContainerCluster)
	v1.GET("/container-clusters/:account/:id/services", h.ListContainerServices)

	// Parameter and secret names may contain slashes, so their get routes
	// take the whole tail.
	v1.GET("/parameters/:account", h.ListParameters)
	v1.GET("/parameters/:account/*", h.GetParameter)
	v1.GET("/secrets/:account", h.ListSecrets)
	v1.GET("/secrets/:account/*", h.GetSecret)

	v1.GET("/databases/:account", h.ListDatabases)
	v1.GET("/databases/:account/:id", h.GetDatabase)

	v1.GET("/buckets/:account", h.ListBuckets)
	v1.GET("/buckets/:account/:id", h.GetBucket)

	v1.GET("/apis/:account", h.ListRestAPIs)
	v1.GET("/apis/:account/:id", h.GetRestAPI)
	v1.GET("/apis/:account/:id/stages", h.ListStages)

	v1.GET("/repositories/:account", h.ListRepositories)
	v1.GET("/repositories/:account/:id", h.GetRepository)
	v1.GET("/repositories/:account/:id/images", h.ListImages)
}

// httpError maps core errors onto transport status codes: a missing entity
// is a 404 with its message; everything else is logged in full and returned
// as a bare 500.
func (h *HttpHandler) httpError(err error) error {
	var nf *describe.NotFoundError
	if errors.As(err, &nf) {
		return echo.NewHTTPError(http.StatusNotFound, nf.Error())
	}
	h.Logger.Error("request failed", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

func (h *HttpHandler) ListAccounts(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, h.Service.ListAccounts())
}

func (h *HttpHandler) GetAccount(ctx echo.Context) error {
	value, err := h.Service.GetAccount(ctx.Param("account"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, value)
}

func (h *HttpHandler) GetAccountStatus(ctx echo.Context) error {
	value, err := h.Service.AccountStatus(ctx.Request().Context(), ctx.Param("account"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, value)
}

func (h *HttpHandler) ListFunctions(ctx echo.Context) error {
	values, err := h.Service.ListFunctions(ctx.Request().Context(), ctx.Param("account"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, values)
}

func (h *HttpHandler) GetFunction(ctx echo.Context) error {
	value, err := h.Service.GetFunction(ctx.Request().Context(), ctx.Param("account"), ctx.Param("id"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, value)
}

func (h *HttpHandler) GetFunctionPolicy(ctx echo.Context) error {
	value, err := h.Service.GetFunctionPolicy(ctx.Request().Context(), ctx.Param("account"), ctx.Param("id"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, value)
}

func (h *HttpHandler) ListContainerClusters(ctx echo.Context) error {
	values, err := h.Service.ListContainerClusters(ctx.Request().Context(), ctx.Param("account"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, values)
}

func (h *HttpHandler) GetContainerCluster(ctx echo.Context) error {
	value, err := h.Service.GetContainerCluster(ctx.Request().Context(), ctx.Param("account"), ctx.Param("id"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, value)
}

func (h *HttpHandler) ListContainerServices(ctx echo.Context) error {
	values, err := h.Service.ListContainerServices(ctx.Request().Context(), ctx.Param("account"), ctx.Param("id"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, values)
}

func (h *HttpHandler) ListParameters(ctx echo.Context) error {
	values, err := h.Service.ListParameters(ctx.Request().Context(), ctx.Param("account"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, values)
}

func (h *HttpHandler) GetParameter(ctx echo.Context) error {
	// The URL cannot say whether the stored name carries a leading slash
	// ("db-host" vs "/db-host"), so a miss on the literal name retries the
	// hierarchical form before giving up.
	name := ctx.Param("*")
	value, err := h.Service.GetParameter(ctx.Request().Context(), ctx.Param("account"), name)
	if describe.IsNotFound(err) && !strings.HasPrefix(name, "/") {
		value, err = h.Service.GetParameter(ctx.Request().Context(), ctx.Param("account"), "/"+name)
	}
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, value)
}

func (h *HttpHandler) ListSecrets(ctx echo.Context) error {
	values, err := h.Service.ListSecrets(ctx.Request().Context(), ctx.Param("account"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, values)
}

func (h *HttpHandler) GetSecret(ctx echo.Context) error {
	value, err := h.Service.GetSecret(ctx.Request().Context(), ctx.Param("account"), ctx.Param("*"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, value)
}

func (h *HttpHandler) ListDatabases(ctx echo.Context) error {
	values, err := h.Service.ListDatabases(ctx.Request().Context(), ctx.Param("account"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, values)
}

func (h *HttpHandler) GetDatabase(ctx echo.Context) error {
	value, err := h.Service.GetDatabase(ctx.Request().Context(), ctx.Param("account"), ctx.Param("id"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, value)
}

func (h *HttpHandler) ListBuckets(ctx echo.Context) error {
	values, err := h.Service.ListBuckets(ctx.Request().Context(), ctx.Param("account"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, values)
}

func (h *HttpHandler) GetBucket(ctx echo.Context) error {
	value, err := h.Service.GetBucket(ctx.Request().Context(), ctx.Param("account"), ctx.Param("id"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, value)
}

func (h *HttpHandler) ListRestAPIs(ctx echo.Context) error {
	values, err := h.Service.ListRestAPIs(ctx.Request().Context(), ctx.Param("account"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, values)
}

func (h *HttpHandler) GetRestAPI(ctx echo.Context) error {
	value, err := h.Service.GetRestAPI(ctx.Request().Context(), ctx.Param("account"), ctx.Param("id"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, value)
}

func (h *HttpHandler) ListStages(ctx echo.Context) error {
	values, err := h.Service.ListStages(ctx.Request().Context(), ctx.Param("account"), ctx.Param("id"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, values)
}

func (h *HttpHandler) ListRepositories(ctx echo.Context) error {
	values, err := h.Service.ListRepositories(ctx.Request().Context(), ctx.Param("account"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, values)
}

func (h *HttpHandler) GetRepository(ctx echo.Context) error {
	value, err := h.Service.GetRepository(ctx.Request().Context(), ctx.Param("account"), ctx.Param("id"))
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, value)
}

func (h *HttpHandler) ListImages(ctx echo.Context) error {
	max := 0
	if raw := ctx.QueryParam("max"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "max must be a positive integer")
		}
		max = parsed
	}

	values, err := h.Service.ListImages(ctx.Request().Context(), ctx.Param("account"), ctx.Param("id"), max)
	if err != nil {
		return h.httpError(err)
	}
	return ctx.JSON(http.StatusOK, values)
}
