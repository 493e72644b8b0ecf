package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/flowbot-io/flowbot/agent"
	"github.com/flowbot-io/flowbot/analytics"
	"github.com/flowbot-io/flowbot/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type cfg struct {
	config.Config
}
type cli struct {
	cfg cfg
}

func setupFlags(cmd *cobra.Command) error {
	cmd.Flags().String("config-file", "", "Path to config file.")
	cmd.Flags().Int("http-port", 8080, "http port for rest endpoints")
	cmd.Flags().String("storage-impl", "memory", "implementation of underline storage")
	cmd.Flags().String("redis-addr", "localhost:6379", "comma separated list of redis host:port")
	cmd.Flags().String("namespace", "flowbot", "namespace used in storage")
	cmd.Flags().String("ai-url", "", "base url of the ai generation service")
	cmd.Flags().Int("ai-timeout", 30, "ai generation call timeout in seconds")
	cmd.Flags().String("collector-impl", "", "execution data collector implementation")
	cmd.Flags().String("collector-file", "flowbot-events.log", "file used by the log file collector")
	cmd.Flags().String("kafka-addr", "localhost:9092", "comma separated list of kafka brokers")
	cmd.Flags().String("kafka-topic", "flowbot-events", "topic used by the kafka collector")
	return viper.BindPFlags(cmd.Flags())
}

func (c *cli) setupConfig(cmd *cobra.Command, args []string) error {
	var err error

	configFile, err := cmd.Flags().GetString("config-file")
	if err != nil {
		return err
	}
	viper.SetConfigFile(configFile)

	if err = viper.ReadInConfig(); err != nil {
		// it's ok if config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	c.cfg.HttpPort = viper.GetInt("http-port")
	c.cfg.StorageType = config.StorageType(viper.GetString("storage-impl"))
	c.cfg.RedisConfig.Addrs = strings.Split(viper.GetString("redis-addr"), ",")
	c.cfg.RedisConfig.Namespace = viper.GetString("namespace")
	c.cfg.AiServiceUrl = viper.GetString("ai-url")
	c.cfg.AiTimeoutSeconds = viper.GetInt("ai-timeout")
	c.cfg.AnalyticsConfig = analytics.DataCollectorConfig{
		CollectorType: analytics.DataCollectorType(viper.GetString("collector-impl")),
		FileName:      viper.GetString("collector-file"),
		KafkaAddrs:    strings.Split(viper.GetString("kafka-addr"), ","),
		KafkaTopic:    viper.GetString("kafka-topic"),
	}
	return nil
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	agent, err := agent.New(c.cfg.Config)
	if err != nil {
		panic(err)
	}
	err = agent.Start()
	if err != nil {
		panic(err)
	}
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	return agent.Shutdown()
}

func main() {
	cli := &cli{}

	cmd := &cobra.Command{
		Use:     "flowbot",
		PreRunE: cli.setupConfig,
		RunE:    cli.run,
	}

	if err := setupFlags(cmd); err != nil {
		log.Fatal(err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
