package discord

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/KirkDiggler/lunchwheel/internal/services/messaging"
	"github.com/KirkDiggler/lunchwheel/internal/services/options"
	"github.com/KirkDiggler/lunchwheel/internal/services/spin"
	"github.com/bwmarrin/discordgo"
)

// Component custom IDs. Mode-specific ones carry the mode after the colon.
const (
	ButtonSpinPrefix   = "roulette_spin:"
	ButtonModePrefix   = "roulette_mode:"
	ButtonShare        = "roulette_share"
	SelectRemovePrefix = "roulette_remove:"
)

// Component actions
const (
	actionSpin   = "spin"
	actionMode   = "mode"
	actionRemove = "remove"
	actionShare  = "share"
)

const (
	wheelFileName  = "wheel.png"
	spinFileName   = "spin.gif"
	resultFileName = "result.png"
	qrFileName     = "share.png"

	// Discord limits
	maxSelectOptions  = 25
	maxLabelLength    = 100
	maxDescription    = 4096
	removeValueLength = 90

	historyLimit = 10
	topPicks     = 3

	resultColor = 0x6BCB77
)

func spinButtonID(mode models.Mode) string {
	return ButtonSpinPrefix + string(mode)
}

func modeButtonID(mode models.Mode) string {
	return ButtonModePrefix + string(mode)
}

func removeSelectID(mode models.Mode) string {
	return SelectRemovePrefix + string(mode)
}

// parseComponentID splits a custom ID into its action and mode
func parseComponentID(customID string) (string, models.Mode, bool) {
	if customID == ButtonShare {
		return actionShare, "", true
	}

	prefixes := map[string]string{
		ButtonSpinPrefix:   actionSpin,
		ButtonModePrefix:   actionMode,
		SelectRemovePrefix: actionRemove,
	}
	for prefix, action := range prefixes {
		if raw, ok := strings.CutPrefix(customID, prefix); ok {
			mode, valid := models.ParseMode(raw)
			return action, mode, valid
		}
	}

	return "", "", false
}

// modeColor matches the embed to the wheel palette
func modeColor(mode models.Mode) int {
	if mode == models.ModeDrink {
		return 0x4D96FF
	}
	return 0xFF6B6B
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}

// formatOptions renders a numbered list that fits in an embed description
func formatOptions(list models.OptionList) string {
	if len(list) == 0 {
		return "_No options yet. Use `/roulette add` to add one._"
	}

	var sb strings.Builder
	for i, option := range list {
		line := fmt.Sprintf("%d. %s\n", i+1, option)
		more := fmt.Sprintf("…and %d more", len(list)-i)
		if sb.Len()+len(line)+len(more) > maxDescription {
			sb.WriteString(more)
			break
		}
		sb.WriteString(line)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// removeValue encodes the index and text so a stale menu can be detected
func removeValue(index int, text string) string {
	return strconv.Itoa(index) + ":" + truncate(text, removeValueLength)
}

func parseRemoveValue(value string) (int, string, error) {
	rawIndex, text, ok := strings.Cut(value, ":")
	if !ok {
		return 0, "", fmt.Errorf("malformed option value %q", value)
	}
	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		return 0, "", fmt.Errorf("malformed option index %q: %w", rawIndex, err)
	}
	return index, text, nil
}

// modeButtons shows one tab per mode with the active one highlighted
func modeButtons(active models.Mode) []discordgo.MessageComponent {
	buttons := make([]discordgo.MessageComponent, 0, len(models.Modes))
	for _, mode := range models.Modes {
		style := discordgo.SecondaryButton
		if mode == active {
			style = discordgo.PrimaryButton
		}
		buttons = append(buttons, discordgo.Button{
			Label:    strings.ToUpper(string(mode)),
			Style:    style,
			CustomID: modeButtonID(mode),
			Emoji: &discordgo.ComponentEmoji{
				Name: mode.Emoji(),
			},
		})
	}
	return buttons
}

func spinButton(mode models.Mode, label string, disabled bool) discordgo.Button {
	return discordgo.Button{
		Label:    label,
		Style:    discordgo.SuccessButton,
		CustomID: spinButtonID(mode),
		Disabled: disabled,
		Emoji: &discordgo.ComponentEmoji{
			Name: "🎡",
		},
	}
}

// renderPanel builds the wheel message: the list, the wheel image and its controls
func renderPanel(mode models.Mode, list models.OptionList, wheelPNG []byte) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s %s", mode.Emoji(), mode.Title()),
		Description: formatOptions(list),
		Color:       modeColor(mode),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d options", len(list)),
		},
	}

	controls := append(modeButtons(mode),
		spinButton(mode, "Spin", len(list) < 2),
		discordgo.Button{
			Label:    "Share",
			Style:    discordgo.SecondaryButton,
			CustomID: ButtonShare,
			Emoji: &discordgo.ComponentEmoji{
				Name: "🔗",
			},
		},
	)

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: controls},
	}
	if menu := removeMenu(mode, list); menu != nil {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{*menu},
		})
	}

	data := &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	}

	if len(wheelPNG) > 0 {
		embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + wheelFileName}
		data.Files = []*discordgo.File{{
			Name:        wheelFileName,
			ContentType: "image/png",
			Reader:      bytes.NewReader(wheelPNG),
		}}
	}

	return data
}

// removeMenu lists the first options of a mode for removal, nil when empty
func removeMenu(mode models.Mode, list models.OptionList) *discordgo.SelectMenu {
	if len(list) == 0 {
		return nil
	}

	choices := make([]discordgo.SelectMenuOption, 0, min(len(list), maxSelectOptions))
	for i, option := range list {
		if i == maxSelectOptions {
			break
		}
		choices = append(choices, discordgo.SelectMenuOption{
			Label: truncate(fmt.Sprintf("%d. %s", i+1, option), maxLabelLength),
			Value: removeValue(i, option),
			Emoji: &discordgo.ComponentEmoji{
				Name: "🗑️",
			},
		})
	}

	return &discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    removeSelectID(mode),
		Placeholder: "Remove an option",
		Options:     choices,
	}
}

// renderSpinning posts the recorded animation under caption
func renderSpinning(mode models.Mode, caption string, animation []byte) *discordgo.WebhookParams {
	if caption == "" {
		caption = fmt.Sprintf("%s Spinning...", mode.Emoji())
	}

	embed := &discordgo.MessageEmbed{
		Title: caption,
		Color: modeColor(mode),
		Image: &discordgo.MessageEmbedImage{URL: "attachment://" + spinFileName},
	}

	return &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
		Files: []*discordgo.File{{
			Name:        spinFileName,
			ContentType: "image/gif",
			Reader:      bytes.NewReader(animation),
		}},
	}
}

// renderResult announces the winner with the wheel at rest and a spin again button
func renderResult(output *spin.SpinOutput, announcement *messaging.GetResultMessageOutput) *discordgo.WebhookParams {
	mode := output.Result.Mode

	if announcement == nil {
		announcement = &messaging.GetResultMessageOutput{
			Title:   "🎉 " + output.Result.WinningOption,
			Message: fmt.Sprintf("%s The wheel has spoken!", mode.Emoji()),
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       announcement.Title,
		Description: announcement.Message,
		Color:       resultColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Winner",
				Value:  output.Result.WinningOption,
				Inline: true,
			},
			{
				Name:   "Mode",
				Value:  strings.ToUpper(string(mode)),
				Inline: true,
			},
			{
				Name:   "Picked from",
				Value:  fmt.Sprintf("%d options", len(output.Options)),
				Inline: true,
			},
		},
	}

	params := &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					spinButton(mode, "Spin again", false),
				},
			},
		},
	}

	if len(output.Still) > 0 {
		embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + resultFileName}
		params.Files = []*discordgo.File{{
			Name:        resultFileName,
			ContentType: "image/png",
			Reader:      bytes.NewReader(output.Still),
		}}
	}

	return params
}

// renderHistory lists the latest winners and the most picked options of a mode
func renderHistory(mode models.Mode, output *spin.HistoryOutput) *discordgo.InteractionResponseData {
	var sb strings.Builder
	if len(output.Entries) == 0 {
		sb.WriteString("_No spins yet. Use `/roulette spin` to start._")
	}
	for _, entry := range output.Entries {
		line := fmt.Sprintf("<t:%d:R> %s **%s**", entry.Timestamp.Unix(), entry.Mode.Emoji(), entry.WinningOption)
		if entry.SpunBy != "" {
			line += fmt.Sprintf(" (spun by %s)", entry.SpunBy)
		}
		sb.WriteString(line + "\n")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📜 Latest spins",
		Description: truncate(strings.TrimSuffix(sb.String(), "\n"), maxDescription),
		Color:       modeColor(mode),
	}

	if picks := mostPicked(output.WinCounts); len(picks) > 0 {
		embed.Fields = []*discordgo.MessageEmbedField{{
			Name:  fmt.Sprintf("Most picked for %s", mode),
			Value: strings.Join(picks, "\n"),
		}}
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
}

// mostPicked formats the top options by wins, ties broken alphabetically
func mostPicked(counts map[string]int64) []string {
	names := make([]string, 0, len(counts))
	for option := range counts {
		names = append(names, option)
	}
	sort.Slice(names, func(a, b int) bool {
		if counts[names[a]] != counts[names[b]] {
			return counts[names[a]] > counts[names[b]]
		}
		return names[a] < names[b]
	})

	if len(names) > topPicks {
		names = names[:topPicks]
	}

	lines := make([]string, len(names))
	for n, option := range names {
		lines[n] = fmt.Sprintf("%d. %s (%d)", n+1, option, counts[option])
	}
	return lines
}

// renderShare hands out the public link and its QR code
func renderShare(url string, qr []byte) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title:       "Share the wheel",
		Description: fmt.Sprintf("Everyone with this link sees the same lists:\n%s", url),
		URL:         url,
		Color:       resultColor,
		Image:       &discordgo.MessageEmbedImage{URL: "attachment://" + qrFileName},
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Files: []*discordgo.File{{
			Name:        qrFileName,
			ContentType: "image/png",
			Reader:      bytes.NewReader(qr),
		}},
		Flags: discordgo.MessageFlagsEphemeral,
	}
}

// userMessage turns service errors into something a channel member can act on
func userMessage(err error) string {
	switch {
	case errors.Is(err, options.ErrEmptyInput):
		return "Please enter an option first."
	case errors.Is(err, options.ErrIndexOutOfRange):
		return "That option is no longer on the list."
	case errors.Is(err, options.ErrUnknownMode), errors.Is(err, spin.ErrUnknownMode):
		return "Pick either lunch or drink."
	case errors.Is(err, spin.ErrInsufficientOptions):
		return "Add at least two options before spinning."
	case errors.Is(err, spin.ErrSpinInProgress):
		return "The wheel is already spinning, hold on!"
	case errors.Is(err, spin.ErrHistoryDisabled):
		return "Spin history is turned off on this bot."
	}
	return "Something went wrong, please try again."
}
