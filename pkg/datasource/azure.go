package datasource

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
	"github.com/opscart/vm-cost-optimizer/pkg/pricing"
)

// AzureSource collects snapshots for running VMs in one subscription.
type AzureSource struct {
	vmClient     *armcompute.VirtualMachinesClient
	prices       *pricing.Table
	subscription string
}

// NewAzureSource creates a source using the default Azure credential chain
func NewAzureSource(subscription string, prices *pricing.Table) (*AzureSource, error) {
	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	vmClient, err := armcompute.NewVirtualMachinesClient(subscription, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create VM client: %w", err)
	}

	return &AzureSource{
		vmClient:     vmClient,
		prices:       prices,
		subscription: subscription,
	}, nil
}

func (s *AzureSource) Name() string {
	return "azure"
}

func (s *AzureSource) IsAvailable(ctx context.Context) bool {
	pager := s.vmClient.NewListAllPager(nil)
	if !pager.More() {
		return true
	}
	_, err := pager.NextPage(ctx)
	return err == nil
}

// Collect lists VMs across the subscription and keeps the running ones.
// The management plane does not expose guest utilization, so usage is
// synthesized; cost comes from the price table keyed by VM size.
func (s *AzureSource) Collect(ctx context.Context) ([]models.VMSnapshot, error) {
	snapshots := []models.VMSnapshot{}

	pager := s.vmClient.NewListAllPager(nil)

	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list VMs: %w", err)
		}

		for _, vm := range page.Value {
			if vm.ID == nil || vm.Name == nil {
				continue
			}
			if vm.Properties == nil || vm.Properties.HardwareProfile == nil ||
				vm.Properties.HardwareProfile.VMSize == nil {
				continue
			}

			resourceGroup := extractResourceGroup(*vm.ID)

			instanceView, err := s.vmClient.InstanceView(ctx, resourceGroup, *vm.Name, nil)
			if err != nil {
				continue
			}
			if !isRunning(instanceView.Statuses) {
				continue
			}

			vmSize := string(*vm.Properties.HardwareProfile.VMSize)
			cost, _ := s.prices.MonthlyCost(models.ProviderAzure, vmSize)

			snapshots = append(snapshots, models.VMSnapshot{
				ID:          "azure-" + *vm.Name,
				Type:        vmSize,
				CPUUsage:    fallbackUsage(),
				MemoryUsage: fallbackUsage(),
				Cost:        cost,
			})
		}
	}

	return snapshots, nil
}

func isRunning(statuses []*armcompute.InstanceViewStatus) bool {
	for _, status := range statuses {
		if status.Code != nil && strings.HasPrefix(*status.Code, "PowerState/running") {
			return true
		}
	}
	return false
}

// extractResourceGroup pulls the resource group name out of a full
// resource ID like /subscriptions/.../resourceGroups/NAME/providers/...
func extractResourceGroup(resourceID string) string {
	parts := strings.Split(resourceID, "/")
	for i, part := range parts {
		if strings.EqualFold(part, "resourceGroups") && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
