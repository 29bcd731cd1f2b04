package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/a2a-bridge/pkg/client"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	bodyStyle    = lipgloss.NewStyle().PaddingLeft(2)

	clientCmd = &cobra.Command{
		Use:   "client",
		Short: "Call the tools of a running bridge",
		Long:  longClient,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	clientToolsCmd = &cobra.Command{
		Use:          "tools",
		Short:        "List the tools the bridge exposes",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tools, err := newBridgeClient().ListTools(cmd.Context())

			if err != nil {
				return err
			}

			fmt.Println(headerStyle.Render(fmt.Sprintf("%d tools", len(tools))))

			for _, tool := range tools {
				fmt.Println(bodyStyle.Render(fmt.Sprintf(
					"%s (%s): %s", tool.Name, strings.Join(tool.Parameters.Required, ", "), tool.Description,
				)))
			}

			return nil
		},
	}

	clientDiscoverCmd = &cobra.Command{
		Use:          "discover <endpoint>",
		Short:        "Discover the agent at endpoint",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newBridgeClient().Discover(cmd.Context(), args[0])
			return render("a2a_discover", result, err)
		},
	}

	clientAgentsCmd = &cobra.Command{
		Use:          "agents",
		Short:        "List the agents the bridge has discovered",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newBridgeClient().ListAgents(cmd.Context())
			return render("a2a_list_agents", result, err)
		},
	}

	clientSendCmd = &cobra.Command{
		Use:          "send <agent> <message>",
		Short:        "Send a message to a discovered agent",
		Args:         cobra.MinimumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newBridgeClient().Send(cmd.Context(), args[0], strings.Join(args[1:], " "))
			return render("a2a_send", result, err)
		},
	}

	clientDemoCmd = &cobra.Command{
		Use:          "demo <endpoint>",
		Short:        "Walk through discover, list and send against one agent",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bridgeClient := newBridgeClient()

			result, err := bridgeClient.Discover(ctx, args[0])

			if err = render("a2a_discover", result, err); err != nil {
				return err
			}

			if !result.Success {
				return nil
			}

			var discovered struct {
				Agent struct {
					Name string `json:"name"`
				} `json:"agent"`
			}

			if err = json.Unmarshal(result.Payload, &discovered); err != nil {
				return fmt.Errorf("failed to decode discovered agent: %w", err)
			}

			result, err = bridgeClient.ListAgents(ctx)

			if err = render("a2a_list_agents", result, err); err != nil {
				return err
			}

			result, err = bridgeClient.Send(ctx, discovered.Agent.Name, "Hello from the MCP bridge!")
			return render("a2a_send", result, err)
		},
	}
)

func newBridgeClient() *client.BridgeClient {
	return client.NewBridgeClient(
		strings.TrimSuffix(viper.GetString("client.server"), "/")+viper.GetString("server.path"),
		viper.GetDuration("bridge.timeout"),
	)
}

func render(tool string, result client.ToolCallResult, err error) error {
	if err != nil {
		return err
	}

	if !result.Success {
		fmt.Println(failureStyle.Render(fmt.Sprintf("%s failed [%s]", tool, result.Kind)))
		fmt.Println(bodyStyle.Render(result.Error))
		return nil
	}

	fmt.Println(successStyle.Render(tool + " succeeded"))

	var out bytes.Buffer

	if err = json.Indent(&out, result.Payload, "", "  "); err != nil {
		out.Reset()
		out.Write(result.Payload)
	}

	fmt.Println(bodyStyle.Render(out.String()))

	return nil
}

func init() {
	rootCmd.AddCommand(clientCmd)

	clientCmd.AddCommand(clientToolsCmd)
	clientCmd.AddCommand(clientDiscoverCmd)
	clientCmd.AddCommand(clientAgentsCmd)
	clientCmd.AddCommand(clientSendCmd)
	clientCmd.AddCommand(clientDemoCmd)

	clientCmd.PersistentFlags().String("server", "http://localhost:3000", "Base URL of the running bridge")
	viper.BindPFlag("client.server", clientCmd.PersistentFlags().Lookup("server"))
}

var longClient = `
Call the tools of a running bridge over HTTP.

Examples:
  # Discover an agent, then talk to it
  a2a-bridge client discover http://localhost:8080
  a2a-bridge client send "Echo Agent" "hello there"

  # Run the whole flow in one go
  a2a-bridge client demo http://localhost:8080
`
