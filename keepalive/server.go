package keepalive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"execution-bot/model"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sirupsen/logrus"
)

const serviceName = "discord-execution-bot"

// Service is the keep-alive HTTP surface plus the self-ping loop that stops
// idle-timeout hosting platforms from reclaiming the process.
type Service struct {
	port        string
	externalURL string
	renderName  string
	onRender    bool
	startTime   time.Time
	client      *http.Client
	log         *logrus.Logger

	// PingInterval and StartDelay are fixed in production; tests shorten them.
	PingInterval time.Duration
	StartDelay   time.Duration

	mu       sync.Mutex
	lastPing string
}

func New(cfg *model.Config, log *logrus.Logger) *Service {
	return &Service{
		port:         cfg.Port,
		externalURL:  cfg.ExternalURL,
		renderName:   cfg.RenderServiceName,
		onRender:     cfg.OnRender,
		startTime:    time.Now(),
		client:       &http.Client{Timeout: 10 * time.Second},
		log:          log,
		PingInterval: 5 * time.Minute,
		StartDelay:   5 * time.Second,
	}
}

// Start launches the HTTP server and the self-ping loop. Both run until ctx
// is cancelled or the process exits.
func (k *Service) Start(ctx context.Context) {
	srv := &http.Server{Addr: "0.0.0.0:" + k.port, Handler: k.Handler()}
	go func() {
		k.log.Infof("Keep-alive server started on port %s", k.port)
		k.log.Infof("Server URL: %s", k.BaseURL())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			k.log.Errorf("Keep-alive server error: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	go k.RunPinger(ctx)
}

// BaseURL resolves this service's own externally reachable address: an
// explicit override wins, then the Render-derived URL, then loopback.
func (k *Service) BaseURL() string {
	if k.externalURL != "" {
		return k.externalURL
	}
	if k.onRender {
		return fmt.Sprintf("https://%s.onrender.com", k.renderName)
	}
	return fmt.Sprintf("http://localhost:%s", k.port)
}

// Handler returns the keep-alive HTTP routes.
func (k *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", k.handleStatus)
	mux.HandleFunc("/ping", k.handlePing)
	mux.HandleFunc("/health", k.handleHealth)
	return mux
}

func (k *Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	lastPing := k.LastPing()
	if lastPing == "" {
		lastPing = "Starting..."
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, statusPage, lastPing)
}

func (k *Service) handlePing(w http.ResponseWriter, r *http.Request) {
	now := time.Now().Format("15:04:05")
	k.setLastPing(now)
	writeJSON(w, map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now().UnixMilli(),
		"lastPing":  now,
	})
}

// handleHealth never fails: gopsutil errors degrade to zero values.
func (k *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	vm, _ := mem.VirtualMemory()
	hostUptime, _ := host.Uptime()

	resp := map[string]interface{}{
		"status":     "healthy",
		"service":    serviceName,
		"uptime":     time.Since(k.startTime).Seconds(),
		"lastPing":   k.LastPing(),
		"hostUptime": hostUptime,
	}
	if vm != nil {
		resp["memoryUsedPercent"] = vm.UsedPercent
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// LastPing returns the last recorded self-ping time, empty if none yet.
// Last-write-wins between the ping handler and readers.
func (k *Service) LastPing() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.lastPing
}

func (k *Service) setLastPing(t string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.lastPing = t
}

const statusPage = `<!DOCTYPE html>
<html>
<head>
    <title>🤖 Discord Bot Status</title>
    <meta http-equiv="refresh" content="30">
    <style>
        body {
            font-family: Arial, sans-serif;
            text-align: center;
            padding: 50px;
            background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%);
            color: white;
        }
        .container {
            background: rgba(255, 255, 255, 0.1);
            border-radius: 20px;
            padding: 40px;
            max-width: 600px;
            margin: 0 auto;
        }
        .status { color: #4ade80; font-size: 32px; margin: 20px; font-weight: bold; }
        .info { font-size: 18px; margin: 15px 0; opacity: 0.9; }
        .ping-time {
            color: #fbbf24;
            font-size: 16px;
            margin-top: 30px;
            padding: 15px;
            background: rgba(0, 0, 0, 0.2);
            border-radius: 10px;
        }
        h1 { margin: 0 0 20px 0; font-size: 48px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>🤖 Discord Execution Bot</h1>
        <div class="status">✅ Online and Monitoring</div>
        <p class="info">Auto-pinging every 5 minutes to stay awake</p>
        <p class="info">discord.gg/locx</p>
        <div class="ping-time">Last ping: %s</div>
    </div>
    <script>
        setInterval(() => location.reload(), 60000);
    </script>
</body>
</html>
`
