package metrics

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics acumula os contadores da aplicação
type Metrics struct {
	// Requisições HTTP
	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64
	TotalLatency       int64
	RequestCount       int64

	// Computação de gráficos
	ChartsComputed int64
	ChartErrors    int64
	CacheHits      int64
	CacheMisses    int64

	// Exportações em Excel
	ReportsExported int64
	ExportErrors    int64

	// Gráficos ao vivo
	WSConnections int64

	// Início para cálculo de uptime
	StartTime time.Time
}

var globalMetrics *Metrics
var once sync.Once

// Init inicializa a instância global de métricas
func Init() {
	once.Do(func() {
		globalMetrics = &Metrics{StartTime: time.Now()}
	})
}

// Get retorna a instância global de métricas
func Get() *Metrics {
	if globalMetrics == nil {
		Init()
	}
	return globalMetrics
}

// IncrementRequests incrementa os contadores de requisição
func (m *Metrics) IncrementRequests(success bool, latencyMs int64) {
	atomic.AddInt64(&m.TotalRequests, 1)
	atomic.AddInt64(&m.TotalLatency, latencyMs)
	atomic.AddInt64(&m.RequestCount, 1)

	if success {
		atomic.AddInt64(&m.SuccessfulRequests, 1)
	} else {
		atomic.AddInt64(&m.FailedRequests, 1)
	}
}

// IncrementChartComputed incrementa os contadores de computação de curvas
func (m *Metrics) IncrementChartComputed(success bool) {
	if success {
		atomic.AddInt64(&m.ChartsComputed, 1)
	} else {
		atomic.AddInt64(&m.ChartErrors, 1)
	}
}

// IncrementCacheHit registra um acerto ou erro do cache de gráficos
func (m *Metrics) IncrementCacheHit(hit bool) {
	if hit {
		atomic.AddInt64(&m.CacheHits, 1)
	} else {
		atomic.AddInt64(&m.CacheMisses, 1)
	}
}

// IncrementExport incrementa os contadores de exportação
func (m *Metrics) IncrementExport(success bool) {
	if success {
		atomic.AddInt64(&m.ReportsExported, 1)
	} else {
		atomic.AddInt64(&m.ExportErrors, 1)
	}
}

// IncrementWSConnection incrementa o contador de conexões websocket
func (m *Metrics) IncrementWSConnection() {
	atomic.AddInt64(&m.WSConnections, 1)
}

// DecrementWSConnection decrementa o contador de conexões websocket
func (m *Metrics) DecrementWSConnection() {
	atomic.AddInt64(&m.WSConnections, -1)
}

// GetAverageLatency retorna a latência média em milissegundos
func (m *Metrics) GetAverageLatency() float64 {
	count := atomic.LoadInt64(&m.RequestCount)
	if count == 0 {
		return 0
	}
	total := atomic.LoadInt64(&m.TotalLatency)
	return float64(total) / float64(count)
}

// GetUptime retorna o tempo desde o início da aplicação
func (m *Metrics) GetUptime() time.Duration {
	return time.Since(m.StartTime)
}

// MetricsSnapshot é uma fotografia pontual de todas as métricas
type MetricsSnapshot struct {
	UptimeSeconds float64 `json:"uptime_seconds"`
	StartTime     string  `json:"start_time"`

	Requests struct {
		Total        int64   `json:"total"`
		Successful   int64   `json:"successful"`
		Failed       int64   `json:"failed"`
		AvgLatencyMs float64 `json:"avg_latency_ms"`
	} `json:"requests"`

	Charts struct {
		Computed    int64 `json:"computed"`
		Errors      int64 `json:"errors"`
		CacheHits   int64 `json:"cache_hits"`
		CacheMisses int64 `json:"cache_misses"`
	} `json:"charts"`

	Exports struct {
		Generated int64 `json:"generated"`
		Errors    int64 `json:"errors"`
	} `json:"exports"`

	WebSocket struct {
		Connections int64 `json:"connections"`
	} `json:"websocket"`

	System struct {
		Goroutines  int    `json:"goroutines"`
		HeapAllocMB uint64 `json:"heap_alloc_mb"`
		NumGC       uint32 `json:"num_gc"`
	} `json:"system"`
}

// Snapshot retorna a fotografia atual das métricas
func (m *Metrics) Snapshot() MetricsSnapshot {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	snapshot := MetricsSnapshot{}

	snapshot.UptimeSeconds = m.GetUptime().Seconds()
	snapshot.StartTime = m.StartTime.Format(time.RFC3339)

	snapshot.Requests.Total = atomic.LoadInt64(&m.TotalRequests)
	snapshot.Requests.Successful = atomic.LoadInt64(&m.SuccessfulRequests)
	snapshot.Requests.Failed = atomic.LoadInt64(&m.FailedRequests)
	snapshot.Requests.AvgLatencyMs = m.GetAverageLatency()

	snapshot.Charts.Computed = atomic.LoadInt64(&m.ChartsComputed)
	snapshot.Charts.Errors = atomic.LoadInt64(&m.ChartErrors)
	snapshot.Charts.CacheHits = atomic.LoadInt64(&m.CacheHits)
	snapshot.Charts.CacheMisses = atomic.LoadInt64(&m.CacheMisses)

	snapshot.Exports.Generated = atomic.LoadInt64(&m.ReportsExported)
	snapshot.Exports.Errors = atomic.LoadInt64(&m.ExportErrors)

	snapshot.WebSocket.Connections = atomic.LoadInt64(&m.WSConnections)

	snapshot.System.Goroutines = runtime.NumGoroutine()
	snapshot.System.HeapAllocMB = memStats.HeapAlloc / 1024 / 1024
	snapshot.System.NumGC = memStats.NumGC

	return snapshot
}
