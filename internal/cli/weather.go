package cli

import (
	"encoding/json"
	"fmt"

	"github.com/martijn/skyboard/internal/core/domain"
	"github.com/spf13/cobra"
)

var weatherKind string

var weatherCmd = &cobra.Command{
	Use:   "weather <city>",
	Short: "Fetch weather for a city",
	Long:  "Fetch current conditions or the weekly forecast for a city and print the provider's JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := domain.ParseForecastKind(weatherKind)
		if err != nil {
			return err
		}

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		payload := services.WeatherService.FetchWeather(cmd.Context(), args[0], kind)
		if payload == nil {
			return fmt.Errorf("no weather data for %s", args[0])
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	},
}

func init() {
	weatherCmd.Flags().StringVarP(&weatherKind, "kind", "k", string(domain.ForecastCurrent), "forecast kind: current or week")
	rootCmd.AddCommand(weatherCmd)
}
