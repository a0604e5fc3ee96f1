package generator

import (
	"fmt"
	"strings"
)

// SystemMessage is sent ahead of every rendered prompt.
const SystemMessage = "You are a professional marketing expert who creates concise, impactful slogans."

// Prompt is the two-message payload sent to the completion service.
type Prompt struct {
	System string
	User   string
}

// NewPrompt pairs a rendered prompt with the fixed system message.
func NewPrompt(user string) Prompt {
	return Prompt{System: SystemMessage, User: user}
}

// Professional renders the expert-copywriter template.
// Only tone == "" selects the default "professional"; any other value, blank or not, is used verbatim.
func Professional(productName, targetAudience, tone string) string {
	if tone == "" {
		tone = StyleProfessional.DefaultTone()
	}
	var sb strings.Builder
	sb.WriteString("You are an expert marketing copywriter with 10+ years of experience in brand strategy and consumer psychology.\n\n")
	sb.WriteString("Your task is to create 3 compelling marketing slogans for the following product:\n\n")
	writeSubject(&sb, productName, targetAudience, tone)
	sb.WriteString("Requirements and Constraints:\n")
	sb.WriteString("1. Each slogan must be between 3-8 words maximum\n")
	sb.WriteString("2. Slogans must be memorable, clear, and emotionally resonant\n")
	sb.WriteString(fmt.Sprintf("3. Maintain a %s tone throughout\n", tone))
	sb.WriteString("4. Focus on customer benefits, not just product features\n")
	sb.WriteString("5. Do NOT make false claims or exaggerated promises\n")
	sb.WriteString("6. Avoid clichés like \"best in class\" or \"world-leading\"\n")
	sb.WriteString("7. Each slogan should be distinct and offer a different angle\n\n")
	sb.WriteString("Format your response as:\n")
	writeSloganLines(&sb)
	sb.WriteString("\nBrief Explanation: [One sentence explaining the strategic approach]")
	return sb.String()
}

// Creative renders the creative-director template. Only tone == "" selects "bold".
func Creative(productName, targetAudience, tone string) string {
	if tone == "" {
		tone = StyleCreative.DefaultTone()
	}
	var sb strings.Builder
	sb.WriteString("You are a creative director at a leading advertising agency, known for creating viral campaigns and memorable brand identities.\n\n")
	sb.WriteString("Your task is to develop 3 innovative marketing slogans that break through the noise:\n\n")
	writeSubject(&sb, productName, targetAudience, tone)
	sb.WriteString("Creative Guidelines:\n")
	sb.WriteString("1. Maximum 7 words per slogan\n")
	sb.WriteString("2. Use vivid language, metaphors, or wordplay where appropriate\n")
	sb.WriteString(fmt.Sprintf("3. Maintain a %s and confident voice\n", tone))
	sb.WriteString("4. Create an emotional connection or spark curiosity\n")
	sb.WriteString("5. Must be appropriate for professional marketing channels\n")
	sb.WriteString("6. Avoid misleading statements or unsubstantiated claims\n")
	sb.WriteString("7. Think outside conventional marketing language\n\n")
	sb.WriteString("Deliver 3 distinct slogans that each take a different creative approach:\n")
	sb.WriteString("- One focusing on aspiration\n")
	sb.WriteString("- One focusing on transformation\n")
	sb.WriteString("- One focusing on uniqueness\n\n")
	sb.WriteString("Format:\n")
	writeSloganLines(&sb)
	sb.WriteString("\nCreative Rationale: [One sentence on your creative strategy]")
	return sb.String()
}

// AudienceFocused renders the consumer-insights template. Only tone == "" selects "friendly".
func AudienceFocused(productName, targetAudience, tone string) string {
	if tone == "" {
		tone = StyleAudienceFocused.DefaultTone()
	}
	var sb strings.Builder
	sb.WriteString("You are a consumer insights specialist who excels at understanding customer psychology and creating messages that deeply resonate with specific audiences.\n\n")
	sb.WriteString("Your task is to craft 3 audience-focused marketing slogans:\n\n")
	writeSubject(&sb, productName, targetAudience, tone)
	sb.WriteString("Audience-Centric Requirements:\n")
	sb.WriteString("1. Each slogan must be 4-8 words\n")
	sb.WriteString(fmt.Sprintf("2. Speak directly to the needs, desires, or challenges of %s\n", targetAudience))
	sb.WriteString("3. Use language and references this audience naturally uses\n")
	sb.WriteString(fmt.Sprintf("4. Maintain a %s and approachable tone\n", tone))
	sb.WriteString("5. Build trust through authenticity, not hype\n")
	sb.WriteString("6. Ensure claims are realistic and verifiable\n")
	sb.WriteString("7. Make the audience feel understood and valued\n\n")
	sb.WriteString(fmt.Sprintf("Consider what matters most to %s and reflect that in your slogans.\n\n", targetAudience))
	sb.WriteString("Provide:\n")
	writeSloganLines(&sb)
	sb.WriteString(fmt.Sprintf("\nAudience Insight: [One sentence on why these resonate with %s]", targetAudience))
	return sb.String()
}

// Render dispatches a request to its style's template.
func Render(req SloganRequest) string {
	switch req.Style {
	case StyleCreative:
		return Creative(req.ProductName, req.TargetAudience, req.Tone)
	case StyleAudienceFocused:
		return AudienceFocused(req.ProductName, req.TargetAudience, req.Tone)
	default:
		return Professional(req.ProductName, req.TargetAudience, req.Tone)
	}
}

// RenderAll renders every style with the same inputs for side-by-side comparison.
// An empty tone means "professional" for all three.
func RenderAll(productName, targetAudience, tone string) map[Style]string {
	if tone == "" {
		tone = StyleProfessional.DefaultTone()
	}
	out := make(map[Style]string, len(Styles()))
	for _, s := range Styles() {
		out[s] = Render(SloganRequest{
			ProductName:    productName,
			TargetAudience: targetAudience,
			Tone:           tone,
			Style:          s,
		})
	}
	return out
}

func writeSubject(sb *strings.Builder, productName, targetAudience, tone string) {
	sb.WriteString(fmt.Sprintf("Product: %s\n", productName))
	sb.WriteString(fmt.Sprintf("Target Audience: %s\n", targetAudience))
	sb.WriteString(fmt.Sprintf("Desired Tone: %s\n\n", tone))
}

func writeSloganLines(sb *strings.Builder) {
	for i := 1; i <= 3; i++ {
		sb.WriteString(fmt.Sprintf("Slogan %d: [your slogan]\n", i))
	}
}
