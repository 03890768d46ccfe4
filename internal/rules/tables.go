package rules

// defaultAllow lists the openers that survive the stripping pass.
func defaultAllow() []string {
	return []string{
		`\section{`,
		`\subsection{`,
		`\caption{`,
		`\begin{equation}`,
		`\begin{equation*}`,
		`\end{equation}`,
		`\end{equation*}`,
		`\begin{eqnarray}`,
		`\begin{eqnarray*}`,
		`\end{eqnarray}`,
		`\end{eqnarray*}`,
		`\frac{`,
		`\includegraphics`,
		`\textsc{`,
		`\textbf{`,
		`\textit{`,
		`\textrm{`,
		`\mbox{`,
		`\boxed{`,
		`\noindent{`,
		`\vtr{`,
		DocumentStart,
		DocumentEnd,
		ProblemStart,
		ProblemEnd,
		`\begin{tabular}`,
		`\end{tabular}`,
		`\begin{itemize}`,
		`\end{itemize}`,
		`\begin{enumerate}`,
		`\end{enumerate}`,
		`\item`,
		`\Concepttitle{`,
		`\Problemtitle{`,
		`\\`,
	}
}

// defaultDeny lists literal fragments deleted after stripping.
func defaultDeny() []string {
	return []string{
		DocumentStart,
		`\center `,
		`\centering`,
		`\Large`,
		`\bf `,
		`\break`,
		`\it `,
		`\textit`,
		`\noindent`,
		`\hline`,
	}
}

// defaultConversions maps commands to their markup.
func defaultConversions() []Conversion {
	return []Conversion{
		{Pattern: `\\section\b`, Template: "<" + SectionTag + ">" + Placeholder + "</" + SectionTag + ">"},
		{Pattern: `\\subsection\b`, Template: "<" + SubsectionTag + ">" + Placeholder + "</" + SubsectionTag + ">"},
		{Pattern: `\\caption\b`, Template: `<span class="caption">` + Placeholder + `</span>`},
		{Pattern: `\\begin\{tabular\}`, Template: "<table>"},
		{Pattern: `\\end\{tabular\}`, Template: "</table>"},
		{Pattern: `\\includegraphics\b`, Template: `<img src="` + ImageBasePath + Placeholder + `"/>`},
		{Pattern: `\\begin\{itemize\}`, Template: "<ul>"},
		{Pattern: `\\end\{itemize\}`, Template: "</ul>"},
		{Pattern: `\\begin\{enumerate\}`, Template: "<ol>"},
		{Pattern: `\\end\{enumerate\}`, Template: "</ol>"},
	}
}

// defaultLiterals maps fixed macros to fixed replacements.
func defaultLiterals() map[string]string {
	return map[string]string{
		`\%`:      "%",
		`\&`:      "&amp;",
		`\_`:      "_",
		`\#`:      "#",
		`\ldots`:  "&hellip;",
		`\degree`: "&deg;",
		`\item`:   "<li>",
	}
}
