//go:build integration

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	app "github.com/Flarenzy/site-ipam/internal/app"
)

const (
	keycloakPort   = "8080/tcp"
	testRealm      = "ipam-integration"
	testClientID   = "ipam-test"
	testUsername   = "integration-user"
	testPassword   = "integration-password"
	testAudience   = "ipam-api"
	testWriteRole  = "ipam-writer"
	containerReady = 2 * time.Minute
	httpReady      = 30 * time.Second
)

const seedInventory = `sites:
  hq:
    devices:
      - name: srv-01
        type: server
        vlan: 20
        ip: 10.10.20.10
        port: Gi1/0/1
        switch: sw-hq-01
        status: active
      - name: pc-01
        type: client
        vlan: 50
        ip: dhcp
        port: Gi1/0/10
        switch: sw-hq-02
        status: active
    vlans:
      - id: 20
        name: Server
        subnet: 10.10.20.0/24
        gateway: 10.10.20.1
      - id: 50
        name: Clients
        subnet: 10.10.50.0/24
        gateway: 10.10.50.1
        dhcp_pool:
          start: 10.10.50.50
          end: 10.10.50.150
  branch:
    devices: []
    vlans:
      - id: 20
        subnet: 10.20.20.0/24
        gateway: 10.20.20.1
`

type integrationSuite struct {
	httpClient *http.Client
	baseURL    string
	issuerURL  string
	workDir    string

	keycloak testcontainers.Container

	apiCancel context.CancelFunc
	apiErrCh  chan error
}

type deviceResponse struct {
	Name   string         `json:"name"`
	IP     string         `json:"ip"`
	Vlan   int            `json:"vlan"`
	Status string         `json:"status"`
	Site   string         `json:"site"`
	Extra  map[string]any `json:"extra"`
}

type devicesResponse struct {
	Devices []deviceResponse `json:"devices"`
	Count   int              `json:"count"`
}

type freeIPsResponse struct {
	FreeIPs []string `json:"free_ips"`
	Count   int      `json:"count"`
}

type statisticsResponse struct {
	TotalDevices  int `json:"total_devices"`
	DHCPDevices   int `json:"dhcp_devices"`
	StaticDevices int `json:"static_devices"`
}

type exportResponse struct {
	Filename string `json:"filename"`
	Rows     int    `json:"rows"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

var (
	suiteOnce   sync.Once
	suite       *integrationSuite
	suiteErr    error
	suiteClosed bool
)

func TestMain(m *testing.M) {
	code := m.Run()

	if suite != nil && !suiteClosed {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Minute)
		defer closeCancel()
		if err := suite.Close(closeCtx); err != nil {
			fmt.Printf("integration teardown failed: %v\n", err)
			if code == 0 {
				code = 1
			}
		}
		suiteClosed = true
	}

	os.Exit(code)
}

func TestAPIStartupFailsWhenJWKSIsUnavailable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	inventoryPath := writeSeedInventory(t, t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = app.Serve(ctx, app.Config{
		InventoryPath: inventoryPath,
		ExportDir:     t.TempDir(),
		LogLevel:      "info",
		ReadTimeout:   3 * time.Second,
		WriteTimeout:  3 * time.Second,
		AuthEnabled:   true,
		AuthIssuer:    "http://127.0.0.1:1/realms/does-not-exist",
		AuthJWKSURL:   "http://127.0.0.1:1/realms/does-not-exist/protocol/openid-connect/certs",
		AuthAudience:  testAudience,
	}, listener)
	if err == nil {
		t.Fatal("expected startup to fail when jwks cannot be reached")
	}
}

func TestInfrastructureAndAuthBoundaries(t *testing.T) {
	s := mustSuite(t)

	resp, err := s.get(t, "/healthz", "")
	if err != nil {
		t.Fatalf("healthz request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /healthz, got %d", resp.StatusCode)
	}
	body := s.readBody(t, resp)
	if strings.TrimSpace(body) != "ok" {
		t.Fatalf("expected ok body, got %q", body)
	}

	resp, err = s.get(t, "/readyz", "")
	if err != nil {
		t.Fatalf("readyz request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /readyz, got %d", resp.StatusCode)
	}
	s.closeBody(t, resp)

	resp, err = s.get(t, "/api/v1/sites", "")
	if err != nil {
		t.Fatalf("unauthenticated request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing token, got %d", resp.StatusCode)
	}
	s.closeBody(t, resp)

	resp, err = s.get(t, "/api/v1/sites", "not-a-token")
	if err != nil {
		t.Fatalf("invalid-token request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", resp.StatusCode)
	}
	s.closeBody(t, resp)

	token := s.mustToken(t)
	resp, err = s.get(t, "/api/v1/sites", token)
	if err != nil {
		t.Fatalf("authenticated request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for authenticated list request, got %d", resp.StatusCode)
	}

	var sites struct {
		Sites []string `json:"sites"`
	}
	s.decodeJSON(t, resp, &sites)
	if len(sites.Sites) != 2 || sites.Sites[0] != "hq" || sites.Sites[1] != "branch" {
		t.Fatalf("unexpected sites: %v", sites.Sites)
	}
}

func TestDeviceLifecycle(t *testing.T) {
	s := mustSuite(t)
	token := s.mustToken(t)

	freeBefore := s.mustFreeIPs(t, token, "hq", 20)
	if freeBefore.Count != 252 {
		t.Fatalf("expected 252 free addresses before adding, got %d", freeBefore.Count)
	}

	createResp, err := s.jsonRequest(t, http.MethodPost, "/api/v1/sites/hq/devices", token, map[string]any{
		"name":   "srv-02",
		"type":   "server",
		"vlan":   20,
		"ip":     freeBefore.FreeIPs[0],
		"port":   "Gi1/0/2",
		"switch": "sw-hq-01",
		"status": "active",
		"extra":  map[string]any{"rack": "R2"},
	})
	if err != nil {
		t.Fatalf("create device: %v", err)
	}
	if createResp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 creating device, got %d: %s", createResp.StatusCode, s.readBody(t, createResp))
	}
	var created deviceResponse
	s.decodeJSON(t, createResp, &created)
	if created.Site != "hq" || created.IP != "10.10.20.2" {
		t.Fatalf("unexpected created device: %+v", created)
	}

	getResp, err := s.get(t, "/api/v1/sites/hq/devices/srv-02", token)
	if err != nil {
		t.Fatalf("get device: %v", err)
	}
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 reading device, got %d", getResp.StatusCode)
	}
	var fetched deviceResponse
	s.decodeJSON(t, getResp, &fetched)
	if fetched.Extra["rack"] != "R2" {
		t.Fatalf("expected extra keys to survive, got %+v", fetched)
	}

	duplicateResp, err := s.jsonRequest(t, http.MethodPost, "/api/v1/sites/hq/devices", token, map[string]any{
		"name": "srv-02", "type": "server", "vlan": 20, "ip": "10.10.20.99",
		"port": "Gi1/0/3", "switch": "sw-hq-01", "status": "active",
	})
	if err != nil {
		t.Fatalf("duplicate device request: %v", err)
	}
	if duplicateResp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate device, got %d", duplicateResp.StatusCode)
	}
	s.closeBody(t, duplicateResp)

	outsideResp, err := s.jsonRequest(t, http.MethodPost, "/api/v1/sites/hq/devices", token, map[string]any{
		"name": "srv-03", "type": "server", "vlan": 20, "ip": "10.43.0.10",
		"port": "Gi1/0/4", "switch": "sw-hq-01", "status": "active",
	})
	if err != nil {
		t.Fatalf("outside ip request: %v", err)
	}
	if outsideResp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-subnet ip, got %d", outsideResp.StatusCode)
	}
	var outsideErr errorResponse
	s.decodeJSON(t, outsideResp, &outsideErr)
	if !strings.Contains(outsideErr.Error, "10.43.0.10") {
		t.Fatalf("unexpected outside ip error: %q", outsideErr.Error)
	}

	freeAfter := s.mustFreeIPs(t, token, "hq", 20)
	if freeAfter.Count != freeBefore.Count-1 || freeAfter.FreeIPs[0] != "10.10.20.3" {
		t.Fatalf("expected the new address to be taken, got %d free starting at %s", freeAfter.Count, freeAfter.FreeIPs[0])
	}

	updateResp, err := s.jsonRequest(t, http.MethodPatch, "/api/v1/sites/hq/devices/srv-02", token, map[string]any{
		"status": "maintenance",
	})
	if err != nil {
		t.Fatalf("update device: %v", err)
	}
	if updateResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 updating device, got %d", updateResp.StatusCode)
	}
	var updated deviceResponse
	s.decodeJSON(t, updateResp, &updated)
	if updated.Status != "maintenance" || updated.IP != "10.10.20.2" {
		t.Fatalf("unexpected updated device: %+v", updated)
	}

	statsResp, err := s.get(t, "/api/v1/statistics?site=hq", token)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	var stats statisticsResponse
	s.decodeJSON(t, statsResp, &stats)
	if stats.TotalDevices != 3 || stats.DHCPDevices != 1 || stats.StaticDevices != 2 {
		t.Fatalf("unexpected statistics: %+v", stats)
	}

	exportResp, err := s.get(t, "/api/v1/export/csv?site=hq", token)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if exportResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 exporting, got %d", exportResp.StatusCode)
	}
	var exported exportResponse
	s.decodeJSON(t, exportResp, &exported)
	if exported.Rows != 3 {
		t.Fatalf("expected 3 exported rows, got %d", exported.Rows)
	}
	if _, err := os.Stat(filepath.Join(s.workDir, "exports", exported.Filename)); err != nil {
		t.Fatalf("expected export file: %v", err)
	}

	deleteResp, err := s.request(t, http.MethodDelete, "/api/v1/sites/hq/devices/srv-02", token, nil)
	if err != nil {
		t.Fatalf("delete device: %v", err)
	}
	if deleteResp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 deleting device, got %d", deleteResp.StatusCode)
	}
	s.closeBody(t, deleteResp)

	missingResp, err := s.get(t, "/api/v1/sites/hq/devices/srv-02", token)
	if err != nil {
		t.Fatalf("get deleted device: %v", err)
	}
	if missingResp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", missingResp.StatusCode)
	}
	s.closeBody(t, missingResp)

	saved, err := os.ReadFile(filepath.Join(s.workDir, "devices.yaml"))
	if err != nil {
		t.Fatalf("read inventory: %v", err)
	}
	if strings.Contains(string(saved), "srv-02") {
		t.Fatal("expected deleted device to be gone from the inventory file")
	}
}

func TestPlanIsLogged(t *testing.T) {
	s := mustSuite(t)
	token := s.mustToken(t)

	resp, err := s.get(t, "/api/v1/plan?vlan=50&site=HQ&log=true", token)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	var plan struct {
		DHCPStart string `json:"dhcp_start"`
		DHCPEnd   string `json:"dhcp_end"`
	}
	s.decodeJSON(t, resp, &plan)
	if plan.DHCPStart != "10.10.50.50" || plan.DHCPEnd != "10.10.50.150" {
		t.Fatalf("unexpected plan: %+v", plan)
	}

	data, err := os.ReadFile(filepath.Join(s.workDir, "vlan_calculations.csv"))
	if err != nil {
		t.Fatalf("read plan log: %v", err)
	}
	if !strings.HasPrefix(string(data), "Timestamp,VLAN-ID,Name,Site") {
		t.Fatalf("unexpected plan log:\n%s", data)
	}
}

func (s *integrationSuite) mustFreeIPs(t *testing.T, token string, site string, vlan int) freeIPsResponse {
	t.Helper()

	resp, err := s.get(t, fmt.Sprintf("/api/v1/sites/%s/vlans/%d/free-ips", site, vlan), token)
	if err != nil {
		t.Fatalf("free ips: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from free-ips, got %d", resp.StatusCode)
	}
	var free freeIPsResponse
	s.decodeJSON(t, resp, &free)
	return free
}

func writeSeedInventory(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "devices.yaml")
	if err := os.WriteFile(path, []byte(seedInventory), 0o644); err != nil {
		t.Fatalf("write inventory: %v", err)
	}
	return path
}

func mustSuite(t *testing.T) *integrationSuite {
	t.Helper()

	suiteOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		suite, suiteErr = newIntegrationSuite(ctx)
	})
	if suiteErr != nil {
		t.Fatalf("integration setup failed: %v", suiteErr)
	}
	if suite == nil {
		t.Fatal("integration suite was not initialized")
	}

	return suite
}

func newIntegrationSuite(ctx context.Context) (*integrationSuite, error) {
	if err := os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true"); err != nil {
		return nil, fmt.Errorf("disable testcontainers ryuk: %w", err)
	}

	workDir, err := os.MkdirTemp("", "site-ipam-integration-")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(workDir, "devices.yaml"), []byte(seedInventory), 0o644); err != nil {
		return nil, fmt.Errorf("write inventory: %w", err)
	}

	s := &integrationSuite{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		workDir:    workDir,
	}

	s.keycloak, s.issuerURL, err = startKeycloak(ctx)
	if err != nil {
		_ = os.RemoveAll(workDir)
		return nil, err
	}

	if err := s.startAPI(ctx); err != nil {
		_ = s.keycloak.Terminate(ctx)
		_ = os.RemoveAll(workDir)
		return nil, err
	}

	return s, nil
}

func (s *integrationSuite) startAPI(ctx context.Context) error {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("listen for api: %w", err)
	}

	s.baseURL = "http://" + listener.Addr().String()
	apiCtx, apiCancel := context.WithCancel(context.Background())
	s.apiCancel = apiCancel
	s.apiErrCh = make(chan error, 1)

	go func() {
		s.apiErrCh <- app.Serve(apiCtx, app.Config{
			InventoryPath: filepath.Join(s.workDir, "devices.yaml"),
			ExportDir:     filepath.Join(s.workDir, "exports"),
			PlanLogPath:   filepath.Join(s.workDir, "vlan_calculations.csv"),
			LogLevel:      "info",
			ReadTimeout:   3 * time.Second,
			WriteTimeout:  3 * time.Second,
			AuthEnabled:   true,
			AuthIssuer:    s.issuerURL,
			AuthAudience:  testAudience,
			AuthJWKSURL:   s.issuerURL + "/protocol/openid-connect/certs",
			AuthWriteRole: testWriteRole,
		}, listener)
	}()

	return s.waitForAPIReady(ctx)
}

func (s *integrationSuite) waitForAPIReady(ctx context.Context) error {
	deadline := time.Now().Add(httpReady)
	for time.Now().Before(deadline) {
		select {
		case err := <-s.apiErrCh:
			if err != nil {
				return fmt.Errorf("api exited before becoming ready: %w", err)
			}
			return errors.New("api exited before becoming ready")
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/healthz", nil)
		if err != nil {
			return err
		}

		resp, err := s.httpClient.Do(req)
		if err == nil {
			s.closeBodyNoTest(resp)
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}

		time.Sleep(500 * time.Millisecond)
	}

	return fmt.Errorf("timed out waiting for api at %s", s.baseURL)
}

func (s *integrationSuite) Close(ctx context.Context) error {
	var errs []error

	if s.apiCancel != nil {
		s.apiCancel()
		select {
		case err := <-s.apiErrCh:
			if err != nil {
				errs = append(errs, err)
			}
		case <-time.After(10 * time.Second):
			errs = append(errs, errors.New("timed out waiting for api shutdown"))
		}
	}

	if s.keycloak != nil {
		if err := s.keycloak.Terminate(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if s.workDir != "" {
		if err := os.RemoveAll(s.workDir); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func startKeycloak(ctx context.Context) (testcontainers.Container, string, error) {
	realmPath, err := repoPath("integration", "api", "testdata", "ipam-integration-realm.json")
	if err != nil {
		return nil, "", fmt.Errorf("resolve realm fixture: %w", err)
	}

	req := testcontainers.ContainerRequest{
		Image:        "quay.io/keycloak/keycloak:24.0.5",
		ExposedPorts: []string{keycloakPort},
		Env: map[string]string{
			"KEYCLOAK_ADMIN":          "admin",
			"KEYCLOAK_ADMIN_PASSWORD": "admin",
		},
		Cmd: []string{"start-dev", "--http-port=8080", "--import-realm"},
		Files: []testcontainers.ContainerFile{
			{
				HostFilePath:      realmPath,
				ContainerFilePath: "/opt/keycloak/data/import/ipam-integration-realm.json",
				FileMode:          0o644,
			},
		},
		WaitingFor: wait.ForListeningPort(keycloakPort).WithStartupTimeout(containerReady),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", fmt.Errorf("start keycloak container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, "", fmt.Errorf("keycloak host: %w", err)
	}
	port, err := container.MappedPort(ctx, keycloakPort)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, "", fmt.Errorf("keycloak mapped port: %w", err)
	}

	issuerURL := fmt.Sprintf("http://%s:%s/realms/%s", host, port.Port(), testRealm)
	if err := waitForHTTP200(ctx, issuerURL+"/.well-known/openid-configuration"); err != nil {
		_ = container.Terminate(ctx)
		return nil, "", err
	}

	return container, issuerURL, nil
}

func waitForHTTP200(ctx context.Context, endpoint string) error {
	client := &http.Client{Timeout: 5 * time.Second}
	deadline := time.Now().Add(httpReady)

	for time.Now().Before(deadline) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		resp, err := client.Do(req)
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}

		time.Sleep(500 * time.Millisecond)
	}

	return fmt.Errorf("timed out waiting for %s", endpoint)
}

func (s *integrationSuite) mustToken(t *testing.T) string {
	t.Helper()

	form := url.Values{
		"grant_type": {"password"},
		"client_id":  {testClientID},
		"username":   {testUsername},
		"password":   {testPassword},
	}

	req, err := http.NewRequest(http.MethodPost, s.issuerURL+"/protocol/openid-connect/token", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("build token request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		t.Fatalf("fetch token: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		body := s.readBody(t, resp)
		t.Fatalf("expected 200 from token endpoint, got %d: %s", resp.StatusCode, body)
	}

	var token tokenResponse
	s.decodeJSON(t, resp, &token)
	if token.AccessToken == "" {
		t.Fatal("expected access token in token response")
	}

	return token.AccessToken
}

func (s *integrationSuite) get(t *testing.T, path string, token string) (*http.Response, error) {
	t.Helper()
	return s.request(t, http.MethodGet, path, token, nil)
}

func (s *integrationSuite) jsonRequest(t *testing.T, method string, path string, token string, payload any) (*http.Response, error) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	return s.request(t, method, path, token, bytes.NewReader(body))
}

func (s *integrationSuite) request(t *testing.T, method string, path string, token string, body io.Reader) (*http.Response, error) {
	t.Helper()

	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return s.httpClient.Do(req)
}

func (s *integrationSuite) decodeJSON(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer s.closeBody(t, resp)

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
		t.Fatalf("expected json response, got %q", ct)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func (s *integrationSuite) readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer s.closeBody(t, resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func (s *integrationSuite) closeBody(t *testing.T, resp *http.Response) {
	t.Helper()
	if resp == nil || resp.Body == nil {
		return
	}
	io.Copy(io.Discard, resp.Body)
	if err := resp.Body.Close(); err != nil {
		t.Fatalf("close body: %v", err)
	}
}

func (s *integrationSuite) closeBodyNoTest(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func repoPath(parts ...string) (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("unable to resolve current file path")
	}

	allParts := append([]string{filepath.Dir(currentFile), "..", ".."}, parts...)
	return filepath.Clean(filepath.Join(allParts...)), nil
}
