package prompts

// DefaultCatalog returns the built-in wallet workflow prompts.
func DefaultCatalog() []Prompt {
	return []Prompt{
		{
			Name:        "check-wallet",
			Description: "Summarize the current state of a wallet on Monad testnet.",
			Arguments: []PromptArgument{
				{Name: "address", Description: "Wallet address to inspect", Required: true},
			},
			Template: "Check the wallet {{address}} on Monad testnet. Report its MON balance and transaction count, then mention the current gas price.",
		},
		{
			Name:        "transfer-mon",
			Description: "Walk through sending MON from one wallet to another.",
			Arguments: []PromptArgument{
				{Name: "to", Description: "Recipient address", Required: true},
				{Name: "amount", Description: "Amount of MON to send", Required: true},
			},
			Template: "Prepare to send {{amount}} MON to {{to}} on Monad testnet. First confirm the sender has a sufficient balance and check the current gas price, then send the transaction and report the hash.",
		},
		{
			Name:        "gas-report",
			Description: "Report current network fee conditions.",
			Template:    "Fetch the current gas price on Monad testnet and explain whether now is a reasonable time to submit a transaction.",
		},
	}
}

// NewDefaultRegistry returns a registry preloaded with the built-in catalog.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	for _, prompt := range DefaultCatalog() {
		registry.RegisterPrompt(prompt)
	}
	return registry
}
