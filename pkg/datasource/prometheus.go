package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
	"github.com/opscart/vm-cost-optimizer/pkg/pricing"
)

const (
	cpuUsageQuery = `100 - (avg by (instance) (rate(node_cpu_seconds_total{mode="idle"}[5m])) * 100)`
	memUsageQuery = `100 * (1 - (node_memory_MemAvailable_bytes / node_memory_MemTotal_bytes))`
)

// PrometheusSource collects snapshots from node_exporter metrics. Each
// scraped instance becomes one VM keyed by its instance label.
type PrometheusSource struct {
	client v1.API
	prices *pricing.Table
	url    string
}

func NewPrometheusSource(url string, prices *pricing.Table) (*PrometheusSource, error) {
	client, err := api.NewClient(api.Config{
		Address: url,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus client: %w", err)
	}

	return &PrometheusSource{
		client: v1.NewAPI(client),
		prices: prices,
		url:    url,
	}, nil
}

func (p *PrometheusSource) Name() string {
	return "prometheus"
}

func (p *PrometheusSource) IsAvailable(ctx context.Context) bool {
	_, _, err := p.client.Query(ctx, "up", time.Now())
	return err == nil
}

// Collect queries CPU and memory utilization per instance. Instances with a
// CPU reading but no memory reading still get a snapshot with synthesized
// memory usage.
func (p *PrometheusSource) Collect(ctx context.Context) ([]models.VMSnapshot, error) {
	cpuByInstance, err := p.queryByInstance(ctx, cpuUsageQuery)
	if err != nil {
		return nil, fmt.Errorf("CPU query failed: %w", err)
	}

	memByInstance, err := p.queryByInstance(ctx, memUsageQuery)
	if err != nil {
		memByInstance = map[string]sampleInfo{}
	}

	snapshots := []models.VMSnapshot{}

	for instance, cpu := range cpuByInstance {
		mem, ok := memByInstance[instance]
		if !ok {
			mem = sampleInfo{value: fallbackUsage()}
		}

		// node_exporter does not know the machine type unless the scrape
		// config attaches an instance_type label
		vmType := cpu.instanceType
		if vmType == "" {
			vmType = mem.instanceType
		}

		cost, _ := p.prices.MonthlyCost(models.ProviderFromID(instance), vmType)

		snapshots = append(snapshots, models.VMSnapshot{
			ID:          instance,
			Type:        vmType,
			CPUUsage:    cpu.value,
			MemoryUsage: mem.value,
			Cost:        cost,
		})
	}

	return snapshots, nil
}

type sampleInfo struct {
	value        float64
	instanceType string
}

func (p *PrometheusSource) queryByInstance(ctx context.Context, query string) (map[string]sampleInfo, error) {
	result, warnings, err := p.client.Query(ctx, query, time.Now())
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	if len(warnings) > 0 {
		fmt.Printf("[WARN] Prometheus: %v\n", warnings)
	}

	vector, ok := result.(model.Vector)
	if !ok || len(vector) == 0 {
		return nil, fmt.Errorf("no data for query: %s", query)
	}

	byInstance := make(map[string]sampleInfo, len(vector))
	for _, sample := range vector {
		instance := string(sample.Metric["instance"])
		if instance == "" {
			continue
		}
		byInstance[instance] = sampleInfo{
			value:        float64(sample.Value),
			instanceType: string(sample.Metric["instance_type"]),
		}
	}

	return byInstance, nil
}
