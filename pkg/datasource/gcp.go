package datasource

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/compute/v1"
	"google.golang.org/api/option"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
	"github.com/opscart/vm-cost-optimizer/pkg/pricing"
)

// GCPSource collects snapshots for running Compute Engine instances
// across every zone in the project.
type GCPSource struct {
	computeClient *compute.Service
	prices        *pricing.Table
	projectID     string
}

// NewGCPSource creates a source using application default credentials
func NewGCPSource(ctx context.Context, projectID string, prices *pricing.Table) (*GCPSource, error) {
	computeClient, err := compute.NewService(ctx, option.WithScopes(
		compute.ComputeReadonlyScope,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create Compute client: %w", err)
	}

	return &GCPSource{
		computeClient: computeClient,
		prices:        prices,
		projectID:     projectID,
	}, nil
}

func (s *GCPSource) Name() string {
	return "gcp"
}

func (s *GCPSource) IsAvailable(ctx context.Context) bool {
	_, err := s.computeClient.Zones.List(s.projectID).MaxResults(1).Context(ctx).Do()
	return err == nil
}

// Collect walks every zone and snapshots the RUNNING instances. Zones that
// fail to list are skipped so one disabled region does not sink the scan.
func (s *GCPSource) Collect(ctx context.Context) ([]models.VMSnapshot, error) {
	zonesResp, err := s.computeClient.Zones.List(s.projectID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}

	snapshots := []models.VMSnapshot{}

	for _, zone := range zonesResp.Items {
		instancesResp, err := s.computeClient.Instances.List(s.projectID, zone.Name).
			Filter("status = RUNNING").
			Context(ctx).Do()
		if err != nil {
			continue
		}

		for _, instance := range instancesResp.Items {
			machineType := extractResourceName(instance.MachineType)
			cost, _ := s.prices.MonthlyCost(models.ProviderGCP, machineType)

			snapshots = append(snapshots, models.VMSnapshot{
				ID:          "gcp-" + instance.Name,
				Type:        machineType,
				CPUUsage:    fallbackUsage(),
				MemoryUsage: fallbackUsage(),
				Cost:        cost,
			})
		}
	}

	return snapshots, nil
}

// extractResourceName returns the last path segment of a resource URL,
// e.g. ".../zones/us-central1-a/machineTypes/e2-medium" yields "e2-medium".
func extractResourceName(resourceURL string) string {
	parts := strings.Split(resourceURL, "/")
	return parts[len(parts)-1]
}
