package service

import (
	"strings"

	"mass-chat/internal/domain"
)

// AgentCatalog expone el catálogo estático de agentes y sus capacidades.
type AgentCatalog struct {
	agents []domain.AgentDescriptor
}

func NewAgentCatalog() *AgentCatalog {
	return &AgentCatalog{
		agents: []domain.AgentDescriptor{
			{
				Type:        "router",
				Name:        "Router Agent",
				Description: "Routes incoming queries to the most appropriate sub-agent.",
				Tools:       []string{"intent-classification"},
			},
			{
				Type:        string(domain.AgentTypeSupport),
				Name:        "Support Agent",
				Description: "Handles general support inquiries, FAQs, and troubleshooting.",
				Tools:       []string{"conversation-history"},
			},
			{
				Type:        string(domain.AgentTypeOrder),
				Name:        "Order Agent",
				Description: "Handles order status, tracking, modifications, and cancellations.",
				Tools:       []string{"fetch-order-details", "check-delivery-status"},
			},
			{
				Type:        string(domain.AgentTypeBilling),
				Name:        "Billing Agent",
				Description: "Handles payment issues, refunds, invoices, and subscriptions.",
				Tools:       []string{"get-invoice-details", "check-refund-status"},
			},
		},
	}
}

func (c *AgentCatalog) List() []domain.AgentDescriptor {
	return c.agents
}

// Capabilities busca un agente por tipo, sin distinguir mayúsculas.
func (c *AgentCatalog) Capabilities(typeName string) (domain.AgentDescriptor, bool) {
	for _, agent := range c.agents {
		if strings.EqualFold(agent.Type, typeName) {
			return agent, true
		}
	}
	return domain.AgentDescriptor{}, false
}
