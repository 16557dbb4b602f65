package services

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"sharecalc/models"
)

const planCommandPrefix = "!plan"

type DiscordBotService struct {
	session   *discordgo.Session
	channelID string
	botID     string
	enabled   bool
	calc      *CalculatorService
}

func NewDiscordBotService(token string, channelID string, calc *CalculatorService) (*DiscordBotService, error) {
	if token == "" {
		log.Println("Discord bot token not provided, Discord sharing disabled")
		return &DiscordBotService{enabled: false}, nil
	}

	if channelID == "" {
		log.Println("Discord channel ID not provided, Discord sharing disabled")
		return &DiscordBotService{enabled: false}, nil
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	user, err := session.User("@me")
	if err != nil {
		return nil, fmt.Errorf("failed to get bot user: %w", err)
	}

	botService := &DiscordBotService{
		session:   session,
		channelID: channelID,
		botID:     user.ID,
		enabled:   true,
		calc:      calc,
	}

	session.AddHandler(botService.messageHandler)

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("failed to open Discord connection: %w", err)
	}

	log.Printf("Discord bot connected successfully! Bot ID: %s, Channel: %s", user.ID, channelID)
	return botService, nil
}

// Enabled is safe on a nil receiver
func (d *DiscordBotService) Enabled() bool {
	return d != nil && d.enabled
}

func (d *DiscordBotService) Close() {
	if d.Enabled() && d.session != nil {
		log.Println("Closing Discord bot connection...")
		d.session.Close()
	}
}

// messageHandler answers `!plan` commands in the configured channel
func (d *DiscordBotService) messageHandler(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == d.botID {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in !plan handler (%q): %v", m.Content, r)
		}
	}()
	if m.ChannelID != d.channelID {
		return
	}
	if !strings.HasPrefix(m.Content, planCommandPrefix) {
		return
	}

	args := strings.Fields(strings.TrimPrefix(m.Content, planCommandPrefix))
	if len(args) == 0 || args[0] == "help" {
		s.ChannelMessageSend(m.ChannelID, planHelp)
		return
	}

	input, err := ParsePlanCommand(args)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("%v. Try `!plan help`", err))
		return
	}

	result := d.calc.ComputePlan(input, input.ViewMode)
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, PlanEmbed("Quick projection", input, result)); err != nil {
		log.Printf("Discord reply failed: %v", err)
	}
}

const planHelp = "**Projection bot commands:**\n" +
	"`!plan <direct> <indirect> <depth> [contracts] [months]` - project a network\n" +
	"`!plan help` - show this help message"

// ParsePlanCommand reads `<direct> <indirect> <depth> [contracts] [months]`
func ParsePlanCommand(args []string) (models.PlanInput, error) {
	input := models.PlanInput{
		ContractsPerUser:      1,
		RealizationTimeMonths: 12,
		ViewMode:              models.ViewModeFamily,
	}
	if len(args) < 3 {
		return input, fmt.Errorf("expected at least 3 arguments, got %d", len(args))
	}

	var err error
	if input.DirectRecruits, err = strconv.Atoi(args[0]); err != nil {
		return input, fmt.Errorf("invalid direct recruits %q", args[0])
	}
	if input.IndirectRecruits, err = parseFinite(args[1]); err != nil {
		return input, fmt.Errorf("invalid indirect recruits %q", args[1])
	}
	if input.NetworkDepth, err = strconv.Atoi(args[2]); err != nil {
		return input, fmt.Errorf("invalid depth %q", args[2])
	}
	if len(args) > 3 {
		if input.ContractsPerUser, err = parseFinite(args[3]); err != nil {
			return input, fmt.Errorf("invalid contracts per user %q", args[3])
		}
	}
	if len(args) > 4 {
		if input.RealizationTimeMonths, err = strconv.Atoi(args[4]); err != nil {
			return input, fmt.Errorf("invalid months %q", args[4])
		}
	}

	if err := ValidatePlanInput(input); err != nil {
		return input, err
	}
	return input, nil
}

func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return f, nil
}

// ShareScenario posts a saved scenario summary to the channel
func (d *DiscordBotService) ShareScenario(s *models.Scenario) error {
	if !d.Enabled() {
		return fmt.Errorf("Discord bot not enabled")
	}
	if s.Result == nil {
		return fmt.Errorf("scenario %s has no result", s.ID)
	}

	embed := PlanEmbed("📈 "+s.Name, s.Input, *s.Result)
	embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Scenario ID: %s", s.ID)}

	if _, err := d.session.ChannelMessageSendEmbed(d.channelID, embed); err != nil {
		return fmt.Errorf("failed to send Discord message: %w", err)
	}

	log.Printf("Scenario shared to Discord: %s", s.Name)
	return nil
}

// PlanEmbed renders a projection summary
func PlanEmbed(title string, input models.PlanInput, result models.CompensationPlanResult) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Network", Value: fmt.Sprintf("%d direct × %.2f, depth %d", input.DirectRecruits, input.IndirectRecruits, input.NetworkDepth), Inline: false},
		{Name: "Users", Value: strconv.Itoa(result.TotalUsers), Inline: true},
		{Name: "Contracts", Value: fmt.Sprintf("%.2f", result.TotalContracts), Inline: true},
		{Name: "One-time bonus", Value: fmt.Sprintf("€%.2f", result.TotalOneTimeBonus), Inline: true},
		{Name: "Recurring Y1", Value: fmt.Sprintf("€%.2f/month", result.TotalRecurringYear1), Inline: true},
		{Name: "Recurring Y2", Value: fmt.Sprintf("€%.2f/month", result.TotalRecurringYear2), Inline: true},
		{Name: "Recurring Y3", Value: fmt.Sprintf("€%.2f/month", result.TotalRecurringYear3), Inline: true},
	}

	if n := len(result.MonthlyData); n > 0 {
		last := result.MonthlyData[n-1]
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("Cumulative after %d months", last.Month),
			Value:  fmt.Sprintf("€%.2f", last.CumulativeEarnings),
			Inline: false,
		})
	}

	return &discordgo.MessageEmbed{
		Title:     title,
		Color:     3066993, // Green
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
