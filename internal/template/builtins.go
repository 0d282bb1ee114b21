package template

// builtins returns the five document templates of the Stadt Bonn tax
// newsletter. Field order matters: forms and validation messages follow it.
func builtins() []*Definition {
	return []*Definition{
		gesetzesaenderung(),
		bmfSchreiben(),
		gerichtsurteil(),
		euRichtlinie(),
		kommunaleAuswirkung(),
	}
}

func opts(values ...string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Text: v}
	}
	return out
}

func gesetzesaenderung() *Definition {
	return &Definition{
		ID:          "gesetzesaenderung",
		Name:        "Gesetzesänderung",
		Icon:        "fas fa-balance-scale",
		Description: "Template für neue Gesetze oder Gesetzesänderungen",
		Fields: []FieldSpec{
			{Name: "gesetz", Label: "Gesetzesbezeichnung", Type: FieldText, Placeholder: "z.B. Grundsteuergesetz (GrStG)", Required: true},
			{Name: "aenderung_typ", Label: "Art der Änderung", Type: FieldSelect, Options: opts("Neufassung", "Änderungsgesetz", "Verordnung", "Verwaltungsanweisung"), Required: true},
			{Name: "inkrafttreten", Label: "Inkrafttreten", Type: FieldDate, Required: true},
			{Name: "betroffene_bereiche", Label: "Betroffene Bereiche", Type: FieldTextarea, Placeholder: "Was konkret wird geändert?", Required: true},
			{Name: "auswirkungen", Label: "Auswirkungen auf Kommunen", Type: FieldTextarea, Placeholder: "Welche direkten Auswirkungen hat dies auf kommunale Verwaltung?", Required: true},
			{Name: "handlungsbedarf", Label: "Handlungsbedarf", Type: FieldTextarea, Placeholder: "Was müssen Kommunen konkret tun?", Required: true},
			{Name: "uebergangsregelungen", Label: "Übergangsregelungen", Type: FieldTextarea, Placeholder: "Übergangsfristen und -regelungen"},
			{Name: "quelle_bgl", Label: "Bundesgesetzblatt-Fundstelle", Type: FieldText, Placeholder: "BGBl. I S. XXX"},
			{Name: "classification", Label: "Dringlichkeit", Type: FieldSelect, Required: true, Options: []Option{
				{Value: "pflicht", Text: "🔴 Pflicht - Sofortiger Handlungsbedarf"},
				{Value: "bald", Text: "🟡 Bald - In den nächsten Monaten"},
				{Value: "radar", Text: "🟢 Radar - Langfristige Planung"},
			}},
		},
		Body: `<div class="newsletter-item {{classification}}">
    <div class="item-header">
        <h3>Gesetzesänderung: {{gesetz}}</h3>
        <div class="ampel-selector">
            <span class="ampel-indicator ampel-{{classification}}">{{classification_text}}</span>
        </div>
    </div>
    <div class="item-content">
        <p><strong>Art der Änderung:</strong> {{aenderung_typ}}</p>
        <p><strong>Inkrafttreten:</strong> {{inkrafttreten}}</p>

        <div class="law-details">
            <h4>Betroffene Bereiche</h4>
            <p>{{betroffene_bereiche}}</p>

            <h4>Auswirkungen auf Kommunen</h4>
            <p>{{auswirkungen}}</p>

            <h4>Handlungsbedarf</h4>
            <p>{{handlungsbedarf}}</p>

            {{#uebergangsregelungen}}
            <h4>Übergangsregelungen</h4>
            <p>{{uebergangsregelungen}}</p>
            {{/uebergangsregelungen}}
        </div>
    </div>
    <div class="item-metadata">
        <div class="source-info">
            <span class="source-label">📖 Quelle:</span>
            {{#quelle_bgl}}
            <span class="source-text">{{quelle_bgl}}</span>
            {{/quelle_bgl}}
            {{^quelle_bgl}}
            <input type="text" placeholder="Bundesgesetzblatt-Fundstelle..." class="source-field">
            {{/quelle_bgl}}
        </div>
        <div class="law-tags">
            <span class="tag-item department-tag">🏢 Steueramt</span>
            <span class="tag-item topic-tag">📌 Gesetzesänderung</span>
        </div>
    </div>
</div>`,
	}
}

func bmfSchreiben() *Definition {
	return &Definition{
		ID:          "bmf-schreiben",
		Name:        "BMF-Schreiben",
		Icon:        "fas fa-file-alt",
		Description: "Template für BMF-Schreiben und ministerielle Verlautbarungen",
		Fields: []FieldSpec{
			{Name: "titel", Label: "Titel des BMF-Schreibens", Type: FieldText, Placeholder: "z.B. Anwendung der Grundsteuerreform", Required: true},
			{Name: "aktenzeichen", Label: "Aktenzeichen", Type: FieldText, Placeholder: "z.B. IV A 3 - S 3050/22/10001", Required: true},
			{Name: "datum", Label: "Datum des Schreibens", Type: FieldDate, Required: true},
			{Name: "betreff", Label: "Betreff/Gegenstand", Type: FieldTextarea, Placeholder: "Worum geht es in dem Schreiben?", Required: true},
			{Name: "kernaussagen", Label: "Kernaussagen", Type: FieldTextarea, Placeholder: "Die wichtigsten Punkte des Schreibens", Required: true},
			{Name: "praxishinweise", Label: "Praktische Hinweise", Type: FieldTextarea, Placeholder: "Was bedeutet dies für die Praxis?"},
			{Name: "anwendung_ab", Label: "Anwendung ab", Type: FieldDate},
			{Name: "fundstelle", Label: "Fundstelle", Type: FieldText, Placeholder: "BStBl., DStR etc."},
			{Name: "classification", Label: "Dringlichkeit", Type: FieldSelect, Required: true, Options: []Option{
				{Value: "pflicht", Text: "🔴 Pflicht - Sofortiger Handlungsbedarf"},
				{Value: "bald", Text: "🟡 Bald - In den nächsten Monaten"},
				{Value: "radar", Text: "🟢 Radar - Langfristige Planung"},
			}},
		},
		Body: `<div class="newsletter-item {{classification}}">
    <div class="item-header">
        <h3>BMF-Schreiben: {{titel}}</h3>
        <div class="ampel-selector">
            <span class="ampel-indicator ampel-{{classification}}">{{classification_text}}</span>
        </div>
    </div>
    <div class="item-content">
        <p><strong>Aktenzeichen:</strong> {{aktenzeichen}}</p>
        <p><strong>Datum:</strong> {{datum}}</p>
        {{#anwendung_ab}}
        <p><strong>Anwendung ab:</strong> {{anwendung_ab}}</p>
        {{/anwendung_ab}}

        <div class="bmf-details">
            <h4>Betreff</h4>
            <p>{{betreff}}</p>

            <h4>Kernaussagen</h4>
            <p>{{kernaussagen}}</p>

            {{#praxishinweise}}
            <h4>Praktische Hinweise</h4>
            <p>{{praxishinweise}}</p>
            {{/praxishinweise}}
        </div>

        <div class="relevance-box">
            <p>💡 <strong>Relevanz für Bonn:</strong> [DATEN ERFORDERLICH: Spezifische Auswirkungen auf Bonner Verwaltung]</p>
        </div>
    </div>
    <div class="item-metadata">
        <div class="source-info">
            <span class="source-label">📖 Quelle:</span>
            {{#fundstelle}}
            <span class="source-text">{{fundstelle}}</span>
            {{/fundstelle}}
            {{^fundstelle}}
            <input type="text" placeholder="Fundstelle (BStBl., DStR etc.)..." class="source-field">
            {{/fundstelle}}
        </div>
        <div class="bmf-tags">
            <span class="tag-item role-tag">👤 Steuerberater</span>
            <span class="tag-item department-tag">🏢 Finanzamt</span>
            <span class="tag-item topic-tag">📌 BMF-Schreiben</span>
        </div>
    </div>
</div>`,
	}
}

func gerichtsurteil() *Definition {
	return &Definition{
		ID:          "gerichtsurteil",
		Name:        "Gerichtsurteil",
		Icon:        "fas fa-gavel",
		Description: "Template für relevante Gerichtsentscheidungen",
		Fields: []FieldSpec{
			{Name: "gericht", Label: "Gericht", Type: FieldText, Placeholder: "z.B. Bundesfinanzhof (BFH)", Required: true},
			{Name: "aktenzeichen", Label: "Aktenzeichen", Type: FieldText, Placeholder: "z.B. II R 12/20", Required: true},
			{Name: "entscheidungsdatum", Label: "Entscheidungsdatum", Type: FieldDate, Required: true},
			{Name: "leitsatz", Label: "Leitsatz", Type: FieldTextarea, Placeholder: "Der offizielle Leitsatz der Entscheidung", Required: true},
			{Name: "sachverhalt", Label: "Sachverhalt (kurz)", Type: FieldTextarea, Placeholder: "Knapper Sachverhalt des Falls", Required: true},
			{Name: "entscheidung", Label: "Entscheidung des Gerichts", Type: FieldTextarea, Placeholder: "Wie hat das Gericht entschieden?", Required: true},
			{Name: "relevanz_kommunen", Label: "Relevanz für Kommunen", Type: FieldTextarea, Placeholder: "Warum ist diese Entscheidung für kommunale Steuern relevant?", Required: true},
			{Name: "instanzenzug", Label: "Instanzenzug", Type: FieldText, Placeholder: "Informationen zu Rechtsmitteln/Revision"},
			{Name: "fundstelle", Label: "Fundstelle", Type: FieldText, Placeholder: "BStBl., DStR, NWB etc."},
			{Name: "classification", Label: "Relevanz", Type: FieldSelect, Required: true, Options: []Option{
				{Value: "pflicht", Text: "🔴 Hoch - Grundsatzentscheidung"},
				{Value: "bald", Text: "🟡 Mittel - Praxisrelevant"},
				{Value: "radar", Text: "🟢 Info - Zur Kenntnis"},
			}},
		},
		Body: `<div class="newsletter-item {{classification}}">
    <div class="item-header">
        <h3>{{gericht}}: {{aktenzeichen}}</h3>
        <div class="ampel-selector">
            <span class="ampel-indicator ampel-{{classification}}">{{classification_text}}</span>
        </div>
    </div>
    <div class="item-content">
        <p><strong>Entscheidungsdatum:</strong> {{entscheidungsdatum}}</p>
        {{#instanzenzug}}
        <p><strong>Instanzenzug:</strong> {{instanzenzug}}</p>
        {{/instanzenzug}}

        <div class="court-decision">
            <h4>Leitsatz</h4>
            <blockquote>{{leitsatz}}</blockquote>

            <h4>Sachverhalt</h4>
            <p>{{sachverhalt}}</p>

            <h4>Entscheidung</h4>
            <p>{{entscheidung}}</p>

            <h4>Relevanz für Kommunen</h4>
            <p>{{relevanz_kommunen}}</p>
        </div>
    </div>
    <div class="item-metadata">
        <div class="source-info">
            <span class="source-label">📖 Quelle:</span>
            {{#fundstelle}}
            <span class="source-text">{{fundstelle}}</span>
            {{/fundstelle}}
            {{^fundstelle}}
            <input type="text" placeholder="Fundstelle eingeben..." class="source-field">
            {{/fundstelle}}
        </div>
        <div class="court-tags">
            <span class="tag-item role-tag">👤 Rechtsabteilung</span>
            <span class="tag-item department-tag">🏢 Steueramt</span>
            <span class="tag-item topic-tag">📌 Rechtsprechung</span>
        </div>
    </div>
</div>`,
	}
}

func euRichtlinie() *Definition {
	return &Definition{
		ID:          "eu-richtlinie",
		Name:        "EU-Richtlinie",
		Icon:        "fas fa-flag",
		Description: "Template für EU-Richtlinien und europarechtliche Entwicklungen",
		Fields: []FieldSpec{
			{Name: "richtlinie", Label: "Richtlinienbezeichnung", Type: FieldText, Placeholder: "z.B. Richtlinie (EU) 2022/XXX", Required: true},
			{Name: "titel", Label: "Titel der Richtlinie", Type: FieldText, Placeholder: "Vollständiger Titel", Required: true},
			{Name: "veroeffentlichung", Label: "Veröffentlichungsdatum", Type: FieldDate, Required: true},
			{Name: "umsetzungsfrist", Label: "Umsetzungsfrist", Type: FieldDate, Required: true},
			{Name: "inhalt", Label: "Wesentlicher Inhalt", Type: FieldTextarea, Placeholder: "Was regelt die Richtlinie?", Required: true},
			{Name: "deutschland_betroffenheit", Label: "Betroffenheit Deutschland", Type: FieldTextarea, Placeholder: "Welche deutschen Gesetze müssen geändert werden?", Required: true},
			{Name: "kommunale_auswirkungen", Label: "Kommunale Auswirkungen", Type: FieldTextarea, Placeholder: "Welche Auswirkungen auf Kommunen sind zu erwarten?", Required: true},
			{Name: "handlungsempfehlung", Label: "Handlungsempfehlung", Type: FieldTextarea, Placeholder: "Was sollten Kommunen jetzt tun?"},
			{Name: "amtsblatt", Label: "Amtsblatt-Fundstelle", Type: FieldText, Placeholder: "ABl. L XXX vom XX.XX.XXXX"},
			{Name: "classification", Label: "Dringlichkeit", Type: FieldSelect, Required: true, Options: []Option{
				{Value: "pflicht", Text: "🔴 Hoch - Kurze Umsetzungsfrist"},
				{Value: "bald", Text: "🟡 Mittel - Normale Umsetzungsfrist"},
				{Value: "radar", Text: "🟢 Niedrig - Lange Umsetzungsfrist"},
			}},
		},
		Body: `<div class="newsletter-item {{classification}}">
    <div class="item-header">
        <h3>EU-Richtlinie: {{richtlinie}}</h3>
        <div class="ampel-selector">
            <span class="ampel-indicator ampel-{{classification}}">{{classification_text}}</span>
        </div>
    </div>
    <div class="item-content">
        <h4>{{titel}}</h4>
        <p><strong>Veröffentlicht:</strong> {{veroeffentlichung}}</p>
        <p><strong>Umsetzungsfrist:</strong> {{umsetzungsfrist}}</p>

        <div class="eu-directive">
            <h4>Wesentlicher Inhalt</h4>
            <p>{{inhalt}}</p>

            <h4>Betroffenheit Deutschland</h4>
            <p>{{deutschland_betroffenheit}}</p>

            <h4>Auswirkungen auf Kommunen</h4>
            <p>{{kommunale_auswirkungen}}</p>

            {{#handlungsempfehlung}}
            <div class="recommendation-box">
                <h4>💡 Handlungsempfehlung</h4>
                <p>{{handlungsempfehlung}}</p>
            </div>
            {{/handlungsempfehlung}}
        </div>
    </div>
    <div class="item-metadata">
        <div class="source-info">
            <span class="source-label">📖 Quelle:</span>
            {{#amtsblatt}}
            <span class="source-text">{{amtsblatt}}</span>
            {{/amtsblatt}}
            {{^amtsblatt}}
            <input type="text" placeholder="Amtsblatt-Fundstelle..." class="source-field">
            {{/amtsblatt}}
        </div>
        <div class="eu-tags">
            <span class="tag-item role-tag">👤 Europabeauftragte</span>
            <span class="tag-item department-tag">🏢 Rechtsamt</span>
            <span class="tag-item topic-tag">📌 EU-Recht</span>
        </div>
    </div>
</div>`,
	}
}

func kommunaleAuswirkung() *Definition {
	return &Definition{
		ID:          "kommunale-auswirkung",
		Name:        "Kommunale Auswirkung",
		Icon:        "fas fa-building",
		Description: "Template für spezifische Auswirkungen auf Kommunalverwaltung",
		Fields: []FieldSpec{
			{Name: "thema", Label: "Thema/Bereich", Type: FieldText, Placeholder: "z.B. Grundsteuerreform Phase 2", Required: true},
			{Name: "auswirkung_typ", Label: "Art der Auswirkung", Type: FieldSelect, Options: opts("Rechtliche Änderung", "Verfahrensänderung", "Technische Umstellung", "Organisatorische Anpassung", "Finanzielle Auswirkung"), Required: true},
			{Name: "betroffene_bereiche", Label: "Betroffene Bereiche", Type: FieldTextarea, Placeholder: "Welche Bereiche der Kommunalverwaltung sind betroffen?", Required: true},
			{Name: "konkrete_auswirkungen", Label: "Konkrete Auswirkungen", Type: FieldTextarea, Placeholder: "Was ändert sich konkret für die tägliche Arbeit?", Required: true},
			{Name: "handlungsschritte", Label: "Erforderliche Handlungsschritte", Type: FieldTextarea, Placeholder: "Was muss die Kommune konkret tun?", Required: true},
			{Name: "zeitrahmen", Label: "Zeitrahmen", Type: FieldText, Placeholder: "Bis wann müssen Maßnahmen umgesetzt sein?", Required: true},
			{Name: "kosten_schaetzung", Label: "Kostenschätzung", Type: FieldText, Placeholder: "Geschätzte Kosten oder Auswirkungen (falls bekannt)"},
			{Name: "ansprechpartner", Label: "Ansprechpartner/Zuständigkeit", Type: FieldText, Placeholder: "Wer ist in der Verwaltung zuständig?", Required: true},
			{Name: "chancen", Label: "Chancen", Type: FieldTextarea, Placeholder: "Welche Vorteile/Chancen ergeben sich?"},
			{Name: "risiken", Label: "Risiken", Type: FieldTextarea, Placeholder: "Welche Risiken bestehen?"},
			{Name: "classification", Label: "Priorität", Type: FieldSelect, Required: true, Options: []Option{
				{Value: "pflicht", Text: "🔴 Hoch - Dringender Handlungsbedarf"},
				{Value: "bald", Text: "🟡 Mittel - Mittelfristige Planung"},
				{Value: "radar", Text: "🟢 Niedrig - Langfristige Vorbereitung"},
			}},
		},
		Body: `<div class="newsletter-item {{classification}}">
    <div class="item-header">
        <h3>Kommunale Auswirkung: {{thema}}</h3>
        <div class="ampel-selector">
            <span class="ampel-indicator ampel-{{classification}}">{{classification_text}}</span>
        </div>
    </div>
    <div class="item-content">
        <p><strong>Art der Auswirkung:</strong> {{auswirkung_typ}}</p>
        <p><strong>Zeitrahmen:</strong> {{zeitrahmen}}</p>
        <p><strong>Zuständigkeit:</strong> {{ansprechpartner}}</p>
        {{#kosten_schaetzung}}
        <p><strong>Kostenschätzung:</strong> {{kosten_schaetzung}}</p>
        {{/kosten_schaetzung}}

        <div class="municipal-impact">
            <h4>Betroffene Bereiche</h4>
            <p>{{betroffene_bereiche}}</p>

            <h4>Konkrete Auswirkungen</h4>
            <p>{{konkrete_auswirkungen}}</p>

            <h4>Erforderliche Handlungsschritte</h4>
            <p>{{handlungsschritte}}</p>

            {{#chancen}}
            <div class="chancen-box">
                <h5>💡 Chancen</h5>
                <p>{{chancen}}</p>
            </div>
            {{/chancen}}
            {{#risiken}}
            <div class="risiken-box">
                <h5>⚠️ Risiken</h5>
                <p>{{risiken}}</p>
            </div>
            {{/risiken}}
        </div>
    </div>
    <div class="item-metadata">
        <div class="source-info">
            <span class="source-label">📖 Quelle:</span>
            <input type="text" placeholder="Quelle der Information..." class="source-field">
        </div>
        <div class="municipal-tags">
            <span class="tag-item role-tag">👤 {{ansprechpartner}}</span>
            <span class="tag-item department-tag">🏢 Kommunalverwaltung</span>
            <span class="tag-item topic-tag">📌 {{auswirkung_typ}}</span>
        </div>
    </div>
</div>`,
	}
}
