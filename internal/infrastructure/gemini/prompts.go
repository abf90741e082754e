package gemini

import (
	"fmt"
	"strings"

	"github.com/DRSN-tech/resale-backend/internal/usecase"
)

func listingPrompt(p *usecase.ListingPrompt) string {
	var sb strings.Builder

	sb.WriteString("Tu es un expert de la vente de vêtements d'occasion sur Vinted. ")
	sb.WriteString("Rédige un titre accrocheur et une description complète pour l'article de la photo.\n\n")
	sb.WriteString("Informations :\n")
	fmt.Fprintf(&sb, "- Prix : %s€\n", p.Price)
	fmt.Fprintf(&sb, "- Taille : %s\n", p.Size)
	fmt.Fprintf(&sb, "- Marque : %s\n", p.Brand)
	if c := strings.TrimSpace(p.Comment); c != "" {
		fmt.Fprintf(&sb, "- Commentaire : %s\n", c)
	}
	sb.WriteString("\nAnalyse l'image puis produis :\n")
	sb.WriteString("1. un titre court avec des émojis ;\n")
	sb.WriteString("2. une description Vinted : une accroche, les détails techniques, les points forts et des hashtags pertinents.\n\n")
	sb.WriteString(`Réponds en JSON avec les clés "title" et "description".`)

	return sb.String()
}

func repliesPrompt(message string) string {
	return fmt.Sprintf(`Tu es un vendeur expérimenté sur Vinted. Un client t'a écrit :
%q

Propose 3 réponses, dans cet ordre :
1. chaleureuse et détaillée ;
2. précise et professionnelle ;
3. courte et amicale.

Chaque réponse est en français, polie, avec un émoji adapté au ton.

Réponds en JSON avec un tableau "responses" de 3 chaînes.`, message)
}
