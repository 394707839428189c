package http

import (
	"net/http"
	"path/filepath"

	"github.com/Flarenzy/site-ipam/internal/domain"
	"github.com/Flarenzy/site-ipam/internal/planner"
)

// @Summary Health check
// @Tags health
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// @Summary Readiness check
// @Tags health
// @Success 200 {string} string "ready"
// @Failure 503 {string} string "inventory unavailable"
// @Router /readyz [get]
func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := a.health.Ping(ctx); err != nil {
		a.Logger.ErrorContext(ctx, "inventory ping failed", "err", err.Error())
		http.Error(w, "inventory unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// @Summary List sites
// @Tags sites
// @Produce json
// @Success 200 {object} SitesResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/sites [get]
func (a *API) handleListSites(w http.ResponseWriter, r *http.Request) {
	sites, err := a.inventory.ListSites(r.Context())
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, SitesResponse{Sites: sites})
}

// @Summary Get site
// @Tags sites
// @Produce json
// @Param site path string true "Site key"
// @Success 200 {object} SiteResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sites/{site} [get]
func (a *API) handleGetSite(w http.ResponseWriter, r *http.Request) {
	site, err := a.inventory.GetSite(r.Context(), r.PathValue("site"))
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, siteToResponse(site))
}

// @Summary List devices
// @Description Devices of every site, optionally filtered.
// @Tags devices
// @Produce json
// @Param site query string false "Site key"
// @Param vlan query int false "VLAN id"
// @Param type query string false "Device type"
// @Success 200 {object} DevicesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/devices [get]
func (a *API) handleListDevices(w http.ResponseWriter, r *http.Request) {
	a.listDevices(w, r, r.URL.Query().Get("site"))
}

// @Summary List devices of a site
// @Tags devices
// @Produce json
// @Param site path string true "Site key"
// @Param vlan query int false "VLAN id"
// @Param type query string false "Device type"
// @Success 200 {object} DevicesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sites/{site}/devices [get]
func (a *API) handleListSiteDevices(w http.ResponseWriter, r *http.Request) {
	a.listDevices(w, r, r.PathValue("site"))
}

func (a *API) listDevices(w http.ResponseWriter, r *http.Request, site string) {
	ctx := r.Context()
	vlan, err := parseQueryInt(r, "vlan")
	if err != nil {
		a.Logger.DebugContext(ctx, "invalid vlan filter", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "invalid vlan"})
		return
	}

	devices, err := a.inventory.ListDevices(ctx, domain.DeviceFilter{
		Site: site,
		Vlan: domain.VlanID(vlan),
		Type: r.URL.Query().Get("type"),
	})
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, devicesToResponse(devices))
}

// @Summary Get device
// @Tags devices
// @Produce json
// @Param site path string true "Site key"
// @Param name path string true "Device name"
// @Success 200 {object} DeviceResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sites/{site}/devices/{name} [get]
func (a *API) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	device, err := a.inventory.FindDevice(r.Context(), r.PathValue("name"), r.PathValue("site"))
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, deviceToResponse(device))
}

// @Summary Add device
// @Description Additional fields such as rack go inside "extra"; unknown top-level keys are rejected with 400.
// @Tags devices
// @Accept json
// @Produce json
// @Param site path string true "Site key"
// @Param device body CreateDeviceRequest true "Device payload"
// @Success 201 {object} DeviceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/sites/{site}/devices [post]
func (a *API) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := decode[CreateDeviceRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling device from request", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	device, err := a.inventory.AddDevice(ctx, r.PathValue("site"), req.toDevice())
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusCreated, deviceToResponse(device))
}

// @Summary Update device
// @Description Only the fields present in the payload change; extra keys are merged.
// @Tags devices
// @Accept json
// @Produce json
// @Param site path string true "Site key"
// @Param name path string true "Device name"
// @Param payload body UpdateDeviceRequest true "Fields to change"
// @Success 200 {object} DeviceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/sites/{site}/devices/{name} [patch]
func (a *API) handleUpdateDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := decode[UpdateDeviceRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling device update from request", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	device, err := a.inventory.UpdateDevice(ctx, r.PathValue("site"), r.PathValue("name"), req.toUpdate())
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, deviceToResponse(device))
}

// @Summary Delete device
// @Tags devices
// @Param site path string true "Site key"
// @Param name path string true "Device name"
// @Success 204 "No content"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/sites/{site}/devices/{name} [delete]
func (a *API) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	if err := a.inventory.DeleteDevice(r.Context(), r.PathValue("site"), r.PathValue("name")); err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Free addresses in a VLAN
// @Description Host addresses not used by a device, the gateway or the DHCP pool.
// @Tags vlans
// @Produce json
// @Param site path string true "Site key"
// @Param vlan path int true "VLAN id"
// @Success 200 {object} FreeIPsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/sites/{site}/vlans/{vlan}/free-ips [get]
func (a *API) handleFreeIPs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parsePathInt(r, "vlan")
	if err != nil {
		a.Logger.DebugContext(ctx, "invalid vlan id", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "invalid vlan"})
		return
	}
	site := r.PathValue("site")

	free, err := a.inventory.FreeAddresses(ctx, domain.VlanID(id), site)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	resp := FreeIPsResponse{Site: site, Vlan: id, FreeIPs: free, Count: len(free)}
	vlan, ok, err := a.inventory.GetVlan(ctx, domain.VlanID(id), site)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	if ok {
		info := vlanToResponse(vlan)
		resp.VlanInfo = &info
	}
	a.respond(w, r, http.StatusOK, resp)
}

// @Summary Device statistics
// @Tags devices
// @Produce json
// @Param site query string false "Site key; all sites when empty"
// @Success 200 {object} StatisticsResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/statistics [get]
func (a *API) handleStatistics(w http.ResponseWriter, r *http.Request) {
	site := r.URL.Query().Get("site")
	stats, err := a.inventory.Statistics(r.Context(), site)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, statisticsToResponse(site, stats))
}

// @Summary Export devices as CSV
// @Description Writes devices_<site|all>_<timestamp>.csv into the export directory.
// @Tags devices
// @Produce json
// @Param site query string false "Site key; all sites when empty"
// @Success 200 {object} ExportResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/export/csv [get]
func (a *API) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	site := r.URL.Query().Get("site")
	filename := domain.ExportFilename(site, a.now())

	rows, err := a.inventory.ExportToFile(r.Context(), filepath.Join(a.exportDir, filename), site)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, ExportResponse{Filename: filename, Rows: rows})
}

// @Summary Plan a VLAN
// @Description Addressing for a known VLAN at HQ or Branch. With log=true the plan is appended to the plan log.
// @Tags planner
// @Produce json
// @Param vlan query int true "VLAN id (10, 20, 30, 40 or 50)"
// @Param site query string true "HQ or Branch"
// @Param log query bool false "Append to the plan log"
// @Success 200 {object} planner.AddressSummary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/plan [get]
func (a *API) handlePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parseQueryInt(r, "vlan")
	if err != nil {
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "invalid vlan"})
		return
	}
	site, err := planner.ParseSite(r.URL.Query().Get("site"))
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	summary, err := planner.Plan(domain.VlanID(id), string(site))
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	if r.URL.Query().Get("log") == "true" {
		if a.planLog == nil {
			a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "plan log not configured"})
			return
		}
		if err := a.planLog.Append(summary); err != nil {
			a.Logger.ErrorContext(ctx, "appending plan log", "err", err.Error())
			a.writeServiceError(w, r, err)
			return
		}
		a.Logger.InfoContext(ctx, "plan logged", "vlan", int(summary.VlanID), "site", summary.Site)
	}

	a.respond(w, r, http.StatusOK, summary)
}
